package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	t.Run("should default uid and role", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())

		// when
		created, err := service.CreateUser(context.Background(), User{
			Username: "maria",
			Email:    "maria@example.com",
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, "user", created.Role)
	})

	t.Run("should reject missing username or email", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())

		// when
		_, err := service.CreateUser(context.Background(), User{Email: "maria@example.com"})

		// then
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject a taken username", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())
		_, err := service.CreateUser(context.Background(), User{Username: "maria", Email: "maria@example.com"})
		assert.NoError(t, err)

		// when
		_, err = service.CreateUser(context.Background(), User{Username: "maria", Email: "other@example.com"})

		// then
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("should return the user from the request context", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())
		created, err := service.CreateUser(context.Background(), User{Username: "maria", Email: "maria@example.com"})
		assert.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		current, err := service.GetCurrentUser(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.Id, current.Id)
		assert.Equal(t, "maria", current.Username)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepo())

		// when
		_, err := service.GetCurrentUser(context.Background())

		// then
		assert.ErrorIs(t, err, ErrNoUser)
	})
}

func TestUpdateUser(t *testing.T) {
	// given
	service := NewUserService(NewStubUserRepo())
	created, err := service.CreateUser(context.Background(), User{Username: "maria", Email: "maria@example.com"})
	assert.NoError(t, err)
	ctx := WithUser(context.Background(), created)

	// when
	created.FirstName = "Maria"
	created.Settings.Timezone = "Europe/Bucharest"
	updated, err := service.UpdateUser(ctx, created)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "Maria", updated.FirstName)
	assert.Equal(t, "Europe/Bucharest", updated.Settings.Timezone)
}

func TestGetUserByUid(t *testing.T) {
	// given
	service := NewUserService(NewStubUserRepo())
	created, err := service.CreateUser(context.Background(), User{Username: "maria", Email: "maria@example.com"})
	assert.NoError(t, err)

	// when
	found, err := service.GetUserByUid(context.Background(), created.Uid)

	// then
	assert.NoError(t, err)
	assert.Equal(t, created.Id, found.Id)

	_, err = service.GetUserByUid(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsUsernameAvailable(t *testing.T) {
	// given
	service := NewUserService(NewStubUserRepo())
	_, err := service.CreateUser(context.Background(), User{Username: "maria", Email: "maria@example.com"})
	assert.NoError(t, err)

	// when
	taken, err := service.IsUsernameAvailable(context.Background(), "maria")
	assert.NoError(t, err)
	free, err := service.IsUsernameAvailable(context.Background(), "ion")
	assert.NoError(t, err)

	// then
	assert.False(t, taken)
	assert.True(t, free)
}
