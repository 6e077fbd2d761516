// Package credentials persists the bearer token and user preferences in the
// local metadata store.
package credentials

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/codepad/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/codepad/internal/common"
)

// Store is safe for concurrent use as long as the repository is.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Token returns the stored access token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.getString(ctx, common.AccessTokenKey)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Other preferences are kept.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.AccessTokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Theme returns the persisted theme name, or "" when never set.
func (s *Store) Theme(ctx context.Context) (string, error) {
	return s.getString(ctx, common.ThemeKey)
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if err := s.repo.Set(ctx, common.ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	return nil
}

// Preference is one stored key/value pair other than the token.
type Preference struct {
	Key   string
	Value string
}

// Preferences lists everything stored besides the access token, sorted by key.
func (s *Store) Preferences(ctx context.Context) ([]Preference, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	out := make([]Preference, 0, len(all))
	for k, v := range all {
		if k == common.AccessTokenKey {
			continue
		}
		out = append(out, Preference{Key: k, Value: string(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Reset removes the token and every stored preference.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset local store: %w", err)
	}
	return nil
}

func (s *Store) getString(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}
