package services

import (
	"strings"
	"testing"

	"kidspace/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	svc := NewUserService(dbtest.Open(t))

	user, err := svc.Create(ctx, "  rocket_rita ")
	require.NoError(t, err)
	assert.Equal(t, "rocket_rita", user.Nickname)
	assert.False(t, user.IsAdmin)
	assert.NotZero(t, user.ID)

	_, err = svc.Create(ctx, "rocket_rita")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(ctx, strings.Repeat("a", MaxNicknameLength+1))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUserService_Lookups(t *testing.T) {
	svc := NewUserService(dbtest.Populated(t))

	admin, err := svc.GetByNickname(ctx, "Admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	byID, err := svc.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin, byID)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByNickname(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_Login(t *testing.T) {
	svc := NewUserService(dbtest.Populated(t))
	_, err := svc.Create(ctx, "luna")
	require.NoError(t, err)

	kid, err := svc.Login(ctx, "luna", "")
	require.NoError(t, err)
	assert.False(t, kid.IsAdmin)

	// no admin password configured: the admin account cannot log in at all
	_, err = svc.Login(ctx, "Admin", "")
	assert.ErrorIs(t, err, ErrBadPassword)
	_, err = svc.Login(ctx, "Admin", "anything")
	assert.ErrorIs(t, err, ErrBadPassword)

	require.NoError(t, svc.SetAdminPassword("orbit-42"))
	_, err = svc.Login(ctx, "Admin", "")
	assert.ErrorIs(t, err, ErrBadPassword)
	_, err = svc.Login(ctx, "Admin", "orbit-41")
	assert.ErrorIs(t, err, ErrBadPassword)

	admin, err := svc.Login(ctx, "Admin", "orbit-42")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	_, err = svc.Login(ctx, "ghost", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
