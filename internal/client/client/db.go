package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/codepad/internal/client/config"
	"github.com/dmitrijs2005/codepad/internal/client/migrations"
	"github.com/dmitrijs2005/codepad/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/codepad/internal/filex"
	"github.com/pressly/goose/v3"
	bolt "go.etcd.io/bbolt"
	_ "modernc.org/sqlite"
)

// Repositories groups the local stores used by the client.
type Repositories struct {
	Metadata metadata.Repository
	closer   io.Closer
}

// Close releases the underlying database.
func (r *Repositories) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and applies the embedded
// migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return db, nil
}

// OpenStore opens the metadata store for the given backend, creating the
// parent directory of path when needed.
func OpenStore(ctx context.Context, backend, path string) (*Repositories, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	switch backend {
	case config.StoreSQLite, "":
		db, err := InitDatabase(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Repositories{Metadata: metadata.NewSQLiteRepository(db), closer: db}, nil

	case config.StoreBolt:
		db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		repo, err := metadata.NewBoltRepository(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Repositories{Metadata: repo, closer: db}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
