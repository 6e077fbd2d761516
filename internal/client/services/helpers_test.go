package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/client/clienttest"
	"github.com/dmitrijs2005/codepad/internal/client/credentials"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
	"github.com/dmitrijs2005/codepad/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newCredentials(t *testing.T) *credentials.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return credentials.NewStore(metadata.NewSQLiteRepository(db))
}

// env wires the real HTTP client against the fake backend.
type env struct {
	srv      *clienttest.Server
	creds    *credentials.Store
	api      *client.HTTPClient
	notes    *notify.Recorder
	auth     AuthService
	ownerID  int64
	password string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := clienttest.NewServer(t)
	creds := newCredentials(t)
	api := client.NewHTTPClient(client.Options{BaseURL: srv.APIURL(), AdminBaseURL: srv.AdminURL(), Tokens: creds})
	notes := &notify.Recorder{}

	id := srv.AddUser(models.User{Username: "ada", Name: "Ada", Surname: "Lovelace"}, "secret")
	srv.AddWorkspace(id, "demo", map[string]string{
		"src/main.py": "print('Hello, world!')",
		"README.md":   "# demo",
	})

	return &env{
		srv:      srv,
		creds:    creds,
		api:      api,
		notes:    notes,
		auth:     NewAuthService(api, creds, logging.Discard(), notes),
		ownerID:  id,
		password: "secret",
	}
}

// signIn authenticates the env's user and clears recorded requests.
func (e *env) signIn(t *testing.T) {
	t.Helper()
	_, err := e.auth.SignIn(context.Background(), "ada", []byte(e.password))
	require.NoError(t, err)
	e.srv.ResetRequests()
}
