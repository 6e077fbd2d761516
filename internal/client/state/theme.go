package state

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/codepad/internal/logging"
)

// Theme is a display mode. It has no effect beyond colours.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" and "light" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// ThemePersister stores the chosen theme between runs.
type ThemePersister interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// ThemeStore holds the current theme. Dark is the default.
type ThemeStore struct {
	store ThemePersister
	log   logging.Logger

	mu      sync.RWMutex
	current Theme
}

func NewThemeStore(store ThemePersister, initial Theme, log logging.Logger) *ThemeStore {
	if initial != ThemeLight {
		initial = ThemeDark
	}
	if log == nil {
		log = logging.Discard()
	}
	return &ThemeStore{store: store, log: log, current: initial}
}

// Load replaces the current theme with the persisted one, if any.
func (s *ThemeStore) Load(ctx context.Context) {
	if s.store == nil {
		return
	}
	v, err := s.store.Theme(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read theme", "error", err)
		return
	}
	if v == "" {
		return
	}
	t, err := ParseTheme(v)
	if err != nil {
		s.log.Warn(ctx, "ignoring stored theme", "theme", v)
		return
	}
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
}

func (s *ThemeStore) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *ThemeStore) IsDark() bool { return s.Current() == ThemeDark }

// Set changes and persists the theme. A persistence failure is returned but
// the in-memory theme still changes.
func (s *ThemeStore) Set(ctx context.Context, t Theme) error {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	if err := s.store.SetTheme(ctx, string(t)); err != nil {
		s.log.Error(ctx, "failed to store theme", "theme", t, "error", err)
		return err
	}
	return nil
}

// Toggle flips between dark and light and returns the new theme.
func (s *ThemeStore) Toggle(ctx context.Context) (Theme, error) {
	next := ThemeDark
	if s.IsDark() {
		next = ThemeLight
	}
	return next, s.Set(ctx, next)
}
