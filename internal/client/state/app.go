// Package state wires the client together into one application object that is
// passed to the views. There are no package-level singletons: every command
// gets its App from New and releases it with Close.
package state

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/config"
	"github.com/dmitrijs2005/codepad/internal/client/credentials"
	"github.com/dmitrijs2005/codepad/internal/client/editor"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
	"github.com/dmitrijs2005/codepad/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/codepad/internal/client/services"
	"github.com/dmitrijs2005/codepad/internal/logging"
)

// App is the injected application state.
type App struct {
	Config      *config.Config
	Log         logging.Logger
	Notifier    notify.Notifier
	Credentials *credentials.Store
	API         client.Client

	Session    services.AuthService
	Theme      *ThemeStore
	Users      services.UserService
	Workspaces services.WorkspaceService
	Admin      services.AdminService

	repos *client.Repositories
}

// New opens the local store named by cfg and assembles the App on top of it.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, n notify.Notifier) (*App, error) {
	repos, err := client.OpenStore(ctx, cfg.StoreBackend, cfg.ResolvedStorePath())
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	a := Assemble(cfg, repos.Metadata, log, n)
	a.repos = repos
	return a, nil
}

// Assemble builds an App over an already opened metadata repository.
func Assemble(cfg *config.Config, repo metadata.Repository, log logging.Logger, n notify.Notifier) *App {
	if log == nil {
		log = logging.Discard()
	}
	if n == nil {
		n = notify.Discard
	}
	creds := credentials.NewStore(repo)
	api := client.NewHTTPClient(client.Options{
		BaseURL:      cfg.APIBaseURL,
		AdminBaseURL: cfg.AdminBaseURL,
		Timeout:      cfg.RequestTimeout,
		Tokens:       creds,
		Logger:       log,
	})
	initial, err := ParseTheme(cfg.Theme)
	if err != nil {
		initial = ThemeDark
	}
	session := services.NewAuthService(api, creds, log, n)

	return &App{
		Config:      cfg,
		Log:         log,
		Notifier:    n,
		Credentials: creds,
		API:         api,
		Session:     session,
		Theme:       NewThemeStore(creds, initial, log),
		Users:       services.NewUserService(api, session, log),
		Workspaces:  services.NewWorkspaceService(api, log),
		Admin:       services.NewAdminService(api, log),
	}
}

// Init restores the persisted theme and session. It never fails; a session
// that cannot be restored leaves the App signed out.
func (a *App) Init(ctx context.Context) {
	a.Theme.Load(ctx)
	a.Session.RestoreSession(ctx)
}

// Teardown ends the session.
func (a *App) Teardown(ctx context.Context) error {
	return a.Session.Logout(ctx)
}

// Close releases the local store.
func (a *App) Close() error {
	return a.repos.Close()
}

// OpenWorkbench loads a workspace and pairs its file tree with a fresh editor
// panel.
func (a *App) OpenWorkbench(ctx context.Context, workspace string) (*Workbench, error) {
	w := &Workbench{
		Files:  services.NewFileTreeManager(a.API, a.Log, a.Notifier),
		Editor: editor.NewPanel(a.API, a.Log),
	}
	if err := w.Files.Load(ctx, workspace); err != nil {
		return w, err
	}
	return w, nil
}
