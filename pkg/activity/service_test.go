package activity

import (
	"context"
	"testing"

	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Username: "owner"})
}

func TestRecord(t *testing.T) {
	t.Run("should append an audit line for the current user", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())
		ctx := testContext()

		// when
		service.Record(ctx, "create", "client", 42, "Added new client: Acme Corp")

		// then
		recent, err := service.GetRecent(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, recent, 1)
		assert.Equal(t, "create", recent[0].Action)
		assert.Equal(t, "client", recent[0].EntityType)
		assert.Equal(t, 42, recent[0].EntityId)
		assert.Equal(t, 1, recent[0].UserId)
	})

	t.Run("should silently skip recording without a user in context", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())

		// when
		service.Record(context.Background(), "create", "client", 42, "Added new client: Acme Corp")

		// then
		recent, err := service.GetRecent(testContext(), 10)
		assert.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestGetRecent(t *testing.T) {
	t.Run("should return newest first, scoped to the caller", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())
		ctx := testContext()
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		service.Record(ctx, "create", "client", 1, "first")
		service.Record(ctx, "update", "client", 1, "second")
		service.Record(otherCtx, "create", "project", 7, "someone else's")

		// when
		recent, err := service.GetRecent(ctx, 10)

		// then
		assert.NoError(t, err)
		assert.Len(t, recent, 2)
		assert.Equal(t, "second", recent[0].Description)
		assert.Equal(t, "first", recent[1].Description)
	})

	t.Run("should clamp an oversized limit", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())
		ctx := testContext()
		for i := 0; i < 15; i++ {
			service.Record(ctx, "create", "task", i, "task created")
		}

		// when
		recent, err := service.GetRecent(ctx, 1000)

		// then
		assert.NoError(t, err)
		assert.Len(t, recent, 10)
	})
}
