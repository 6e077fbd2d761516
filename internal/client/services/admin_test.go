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

func TestAdminService_CRUD(t *testing.T) {
	e := newEnv(t)
	svc := NewAdminService(e.api, nil)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, models.User{Username: "linus", HashPassword: "pw", Name: "Linus"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	id := created.IDString()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	updated, err := svc.UpdateUser(ctx, id, models.User{Surname: "Torvalds"})
	require.NoError(t, err)
	assert.Equal(t, "Linus Torvalds (linus)", updated.DisplayName())

	got, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Torvalds", got.Surname)

	require.NoError(t, svc.DeleteUser(ctx, id))
	_, err = svc.GetUser(ctx, id)
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestAdminService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	svc := NewAdminService(e.api, nil)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, models.User{})
	require.ErrorIs(t, err, common.ErrEmptyName)
	assert.Empty(t, e.srv.Requests())

	_, err = svc.CreateUser(ctx, models.User{Username: "ada", HashPassword: "x"})
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Contains(t, err.Error(), "Username already registered")
}
