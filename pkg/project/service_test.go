package project

import (
	"context"
	"testing"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setup() (*ServiceImpl, context.Context) {
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	service := NewService(NewStubRepository(), clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, ctx
}

func TestCreateProject(t *testing.T) {
	service, ctx := setup()

	t.Run("should default status to not_started", func(t *testing.T) {
		// when
		created, err := service.Create(ctx, Project{Name: "Website redesign", ClientId: 3})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusNotStarted, created.Status)
		assert.True(t, created.IsActive())
	})

	t.Run("should reject a project without a client", func(t *testing.T) {
		// when
		_, err := service.Create(ctx, Project{Name: "Orphan"})

		// then
		assert.ErrorIs(t, err, ErrProjectDataInvalid)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		// when
		_, err := service.Create(ctx, Project{Name: "Website redesign", ClientId: 3, Status: "paused"})

		// then
		assert.ErrorIs(t, err, ErrProjectDataInvalid)
	})
}

func TestUpdateProject(t *testing.T) {
	service, ctx := setup()

	// given
	created, err := service.Create(ctx, Project{Name: "Website redesign", ClientId: 3, Status: StatusInProgress})
	assert.NoError(t, err)

	t.Run("should stamp completedAt when status moves to completed", func(t *testing.T) {
		// when
		created.Status = StatusCompleted
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.NotNil(t, updated.CompletedAt)
		assert.Equal(t, testNow, *updated.CompletedAt)
		assert.False(t, updated.IsActive())
	})

	t.Run("should keep the original completedAt on later updates", func(t *testing.T) {
		// given
		updated, err := service.GetById(ctx, created.Id)
		assert.NoError(t, err)

		// when
		updated.Progress = 100
		again, err := service.Update(ctx, updated)

		// then
		assert.NoError(t, err)
		assert.Equal(t, testNow, *again.CompletedAt)
	})
}

func TestProjectIsActive(t *testing.T) {
	tests := []struct {
		status Status
		active bool
	}{
		{StatusNotStarted, true},
		{StatusInProgress, true},
		{StatusOnHold, false},
		{StatusCompleted, false},
		{StatusCanceled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.active, Project{Status: tt.status}.IsActive())
		})
	}
}

func TestCountActive(t *testing.T) {
	service, ctx := setup()

	// given
	_, err := service.Create(ctx, Project{Name: "A", ClientId: 1, Status: StatusInProgress})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Project{Name: "B", ClientId: 1, Status: StatusNotStarted})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Project{Name: "C", ClientId: 1, Status: StatusCompleted})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Project{Name: "D", ClientId: 1, Status: StatusOnHold})
	assert.NoError(t, err)

	// when
	count, err := service.CountActive(ctx)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
