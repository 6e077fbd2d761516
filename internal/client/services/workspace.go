package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/client/tree"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/dmitrijs2005/codepad/internal/logging"
)

// WorkspaceService manages the caller's workspaces as a whole. The files
// inside a workspace are handled by FileTreeManager.
type WorkspaceService interface {
	List(ctx context.Context) ([]models.Workspace, error)
	Create(ctx context.Context, w models.WorkspaceCreate) error
	Delete(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*models.Workspace, error)
}

type workspaceService struct {
	api client.WorkspaceAPI
	log logging.Logger
}

func NewWorkspaceService(api client.WorkspaceAPI, log logging.Logger) WorkspaceService {
	if log == nil {
		log = logging.Discard()
	}
	return &workspaceService{api: api, log: log}
}

func (s *workspaceService) List(ctx context.Context) ([]models.Workspace, error) {
	list, err := s.api.ListWorkspaces(ctx)
	if err != nil {
		s.log.Error(ctx, "list workspaces failed", "error", err)
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return list, nil
}

// Create checks the name locally; server-side validation failures come back
// as client.ErrValidation with the server's detail in the message.
func (s *workspaceService) Create(ctx context.Context, w models.WorkspaceCreate) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return fmt.Errorf("create workspace: %w", common.ErrEmptyName)
	}
	if err := tree.ValidateName(w.Name); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	if err := s.api.CreateWorkspace(ctx, w); err != nil {
		s.log.Error(ctx, "create workspace failed", "workspace", w.Name, "error", err)
		return fmt.Errorf("create workspace: %w", err)
	}
	s.log.Info(ctx, "workspace created", "workspace", w.Name)
	return nil
}

func (s *workspaceService) Delete(ctx context.Context, name string) error {
	if err := s.api.DeleteWorkspace(ctx, name); err != nil {
		s.log.Error(ctx, "delete workspace failed", "workspace", name, "error", err)
		return fmt.Errorf("delete workspace: %w", err)
	}
	s.log.Info(ctx, "workspace deleted", "workspace", name)
	return nil
}

func (s *workspaceService) Get(ctx context.Context, name string) (*models.Workspace, error) {
	w, err := s.api.GetWorkspace(ctx, name)
	if err != nil {
		s.log.Error(ctx, "get workspace failed", "workspace", name, "error", err)
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return w, nil
}
