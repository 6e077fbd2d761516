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

// UserService covers user search and the signed-in user's own profile.
type UserService interface {
	Search(ctx context.Context, query string) ([]models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// UpdateProfile changes the signed-in user's profile and refreshes the
	// session copy.
	UpdateProfile(ctx context.Context, u models.User) (*models.User, error)
	// DeleteProfile removes the signed-in user's account and logs out.
	DeleteProfile(ctx context.Context) error
}

type userService struct {
	api     client.ProfileAPI
	session AuthService
	log     logging.Logger
}

func NewUserService(api client.ProfileAPI, session AuthService, log logging.Logger) UserService {
	if log == nil {
		log = logging.Discard()
	}
	return &userService{api: api, session: session, log: log}
}

func (s *userService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	users, err := s.api.SearchUsers(ctx, query)
	if err != nil {
		s.log.Error(ctx, "search failed", "query", query, "error", err)
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		userID = s.session.UserID()
	}
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}
	u, err := s.api.GetProfile(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "get profile failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, u models.User) (*models.User, error) {
	userID := s.session.UserID()
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}
	updated, err := s.api.UpdateProfile(ctx, userID, u)
	if err != nil {
		s.log.Error(ctx, "update profile failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.session.SetUser(updated)
	return updated, nil
}

func (s *userService) DeleteProfile(ctx context.Context) error {
	userID := s.session.UserID()
	if userID == "" {
		return common.ErrNotAuthenticated
	}
	if err := s.api.DeleteProfile(ctx, userID); err != nil {
		s.log.Error(ctx, "delete profile failed", "user_id", userID, "error", err)
		return fmt.Errorf("delete profile: %w", err)
	}
	s.log.Info(ctx, "profile deleted", "user_id", userID)
	return s.session.Logout(ctx)
}
