package client

import (
	"context"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

// TokenSource yields the current bearer credential. An empty string means
// there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type AuthAPI interface {
	SignIn(ctx context.Context, username, password string) (*models.AuthResult, error)
	SignUp(ctx context.Context, form models.SignUpForm) (*models.AuthResult, error)
}

type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, u models.User) (*models.User, error)
	DeleteProfile(ctx context.Context, userID string) error
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

type WorkspaceAPI interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	CreateWorkspace(ctx context.Context, w models.WorkspaceCreate) error
	DeleteWorkspace(ctx context.Context, name string) error
	GetWorkspace(ctx context.Context, name string) (*models.Workspace, error)
}

// FileAPI addresses items by workspace-relative paths such as "src/main.py".
type FileAPI interface {
	CreateFile(ctx context.Context, workspace, path string) error
	CreateFolder(ctx context.Context, workspace, path string) error
	DeleteItem(ctx context.Context, workspace, path string) error
	CopyItem(ctx context.Context, workspace, src, dst string) error
	RenameItem(ctx context.Context, workspace, oldPath, newPath string) error
	ReadFile(ctx context.Context, workspace, path string) (string, error)
	WriteFile(ctx context.Context, workspace, path, content string) error
}

type ExecAPI interface {
	ExecuteCode(ctx context.Context, code, language string) (*models.ExecResult, error)
}

type AdminAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Client is the full API surface.
type Client interface {
	AuthAPI
	ProfileAPI
	WorkspaceAPI
	FileAPI
	ExecAPI
	AdminAPI
}
