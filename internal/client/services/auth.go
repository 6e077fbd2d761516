// Package services contains application services for the codepad client.
// This file defines the authentication service, which owns the session:
// sign-in/up, restoring a persisted session at startup and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/dmitrijs2005/codepad/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService holds the current session.
//
// Contract:
//   - Login: persist the token and set the session from an already known
//     profile; no network call.
//   - SignIn: remote sign-in followed by Login. On failure nothing is persisted
//     and the session stays unauthenticated.
//   - SignUp: remote registration; logs in when the server issued a token.
//   - RestoreSession: rebuild the session from the stored token. Never fails;
//     problems leave the session unauthenticated and are reported once.
//   - Logout: drop the session and the stored token; no remote call.
//
// Accessors are safe for concurrent use.
type AuthService interface {
	Login(ctx context.Context, user *models.User, token string) error
	SignIn(ctx context.Context, username string, password []byte) (*models.User, error)
	SignUp(ctx context.Context, form models.SignUpForm) (*models.User, error)
	RestoreSession(ctx context.Context)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	User() *models.User
	UserID() string
	SetUser(user *models.User)
}

// TokenStore persists the bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthAPI is the subset of the API the session needs.
type AuthAPI interface {
	client.AuthAPI
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	api      AuthAPI
	tokens   TokenStore
	log      logging.Logger
	notifier notify.Notifier

	mu            sync.RWMutex
	authenticated bool
	user          *models.User
	userID        string
}

// NewAuthService returns an unauthenticated session bound to api and tokens.
func NewAuthService(api AuthAPI, tokens TokenStore, log logging.Logger, n notify.Notifier) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	if n == nil {
		n = notify.Discard
	}
	return &authService{api: api, tokens: tokens, log: log, notifier: n}
}

// TokenSubject extracts the subject claim without verifying the signature;
// verification is the server's job.
func TokenSubject(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (a *authService) Login(ctx context.Context, user *models.User, token string) error {
	if token == "" {
		return fmt.Errorf("login: %w: empty token", common.ErrInvalidToken)
	}

	userID := user.IDString()
	if userID == "" {
		sub, err := TokenSubject(token)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		userID = sub
	}

	if err := a.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.set(user, userID)
	a.log.Info(ctx, "session started", "user_id", userID)
	return nil
}

func (a *authService) SignIn(ctx context.Context, username string, password []byte) (*models.User, error) {
	res, err := a.api.SignIn(ctx, username, string(password))
	common.WipeByteArray(password)
	if err != nil {
		a.log.Warn(ctx, "sign in failed", "username", username, "error", err)
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("sign in: %w: no token in response", common.ErrInvalidToken)
	}
	if err := a.Login(ctx, res.User, res.Token); err != nil {
		return nil, err
	}
	return a.User(), nil
}

func (a *authService) SignUp(ctx context.Context, form models.SignUpForm) (*models.User, error) {
	res, err := a.api.SignUp(ctx, form)
	if err != nil {
		a.log.Warn(ctx, "sign up failed", "username", form.Username, "error", err)
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if res.Token == "" {
		return res.User, nil
	}
	if err := a.Login(ctx, res.User, res.Token); err != nil {
		return nil, err
	}
	return a.User(), nil
}

func (a *authService) RestoreSession(ctx context.Context) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		a.fail(ctx, "could not read stored session", err)
		return
	}
	if token == "" {
		a.reset()
		return
	}

	userID, err := TokenSubject(token)
	if err != nil {
		a.dropToken(ctx)
		a.fail(ctx, "stored session is invalid, please sign in again", err)
		return
	}

	user, err := a.api.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.dropToken(ctx)
			a.fail(ctx, "session expired, please sign in again", err)
			return
		}
		a.fail(ctx, "could not restore session", err)
		return
	}

	a.set(user, userID)
	a.log.Info(ctx, "session restored", "user_id", userID)
}

func (a *authService) Logout(ctx context.Context) error {
	a.reset()
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear stored token", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "session ended")
	return nil
}

func (a *authService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// User returns a copy of the current profile, or nil.
func (a *authService) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *authService) UserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userID
}

// SetUser replaces the cached profile of an authenticated session.
func (a *authService) SetUser(user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.authenticated || user == nil {
		return
	}
	u := *user
	a.user = &u
}

func (a *authService) set(user *models.User, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authenticated = true
	a.userID = userID
	a.user = nil
	if user != nil {
		u := *user
		a.user = &u
	}
}

func (a *authService) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authenticated = false
	a.user = nil
	a.userID = ""
}

func (a *authService) dropToken(ctx context.Context) {
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear stored token", "error", err)
	}
}

func (a *authService) fail(ctx context.Context, msg string, err error) {
	a.reset()
	a.log.Warn(ctx, "restore session failed", "reason", msg, "error", err)
	notify.Error(ctx, a.notifier, "%s", msg)
}
