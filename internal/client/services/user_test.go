package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Search(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser(models.User{Username: "grace", Name: "Grace", Surname: "Hopper"}, "pw")
	e.signIn(t)
	svc := NewUserService(e.api, e.auth, nil)
	ctx := context.Background()

	users, err := svc.Search(ctx, "hop")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "grace", users[0].Username)

	users, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, users)
	assert.Len(t, e.srv.Requests(), 1)
}

func TestUserService_GetProfileDefaultsToSession(t *testing.T) {
	e := newEnv(t)
	svc := NewUserService(e.api, e.auth, nil)

	_, err := svc.GetProfile(context.Background(), "")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	e.signIn(t)
	u, err := svc.GetProfile(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
}

func TestUserService_UpdateProfileRefreshesSession(t *testing.T) {
	e := newEnv(t)
	e.signIn(t)
	svc := NewUserService(e.api, e.auth, nil)

	u, err := svc.UpdateProfile(context.Background(), models.User{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "ada@example.com", e.auth.User().Email)
	assert.Equal(t, "Ada", e.auth.User().Name)
}

func TestUserService_DeleteProfileLogsOut(t *testing.T) {
	e := newEnv(t)
	e.signIn(t)
	svc := NewUserService(e.api, e.auth, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProfile(ctx))
	assert.False(t, e.auth.IsAuthenticated())

	token, err := e.creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = e.auth.SignIn(ctx, "ada", []byte("secret"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
