package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/dmitrijs2005/codepad/internal/logging"
)

// AdminService is the user-management console.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type adminService struct {
	api client.AdminAPI
	log logging.Logger
}

func NewAdminService(api client.AdminAPI, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	return &adminService{api: api, log: log}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.log.Error(ctx, "admin list users failed", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *adminService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.api.GetUser(ctx, id)
	if err != nil {
		s.log.Error(ctx, "admin get user failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (s *adminService) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return nil, fmt.Errorf("create user: %w", common.ErrEmptyName)
	}
	created, err := s.api.CreateUser(ctx, u)
	if err != nil {
		s.log.Error(ctx, "admin create user failed", "username", u.Username, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info(ctx, "user created", "user_id", created.IDString())
	return created, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error) {
	updated, err := s.api.UpdateUser(ctx, id, u)
	if err != nil {
		s.log.Error(ctx, "admin update user failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return updated, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.log.Error(ctx, "admin delete user failed", "user_id", id, "error", err)
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}
