package task

import (
	"context"
	"testing"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setup() (*ServiceImpl, context.Context) {
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	service := NewService(NewStubRepository(), clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, ctx
}

func TestCreateTask(t *testing.T) {
	service, ctx := setup()

	t.Run("should default status and priority", func(t *testing.T) {
		// when
		created, err := service.Create(ctx, Task{Title: "Prepare proposal"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusTodo, created.Status)
		assert.Equal(t, PriorityMedium, created.Priority)
	})

	t.Run("should reject a task without a title", func(t *testing.T) {
		// when
		_, err := service.Create(ctx, Task{})

		// then
		assert.ErrorIs(t, err, ErrTaskDataInvalid)
	})

	t.Run("should reject an unknown priority", func(t *testing.T) {
		// when
		_, err := service.Create(ctx, Task{Title: "Prepare proposal", Priority: "urgent"})

		// then
		assert.ErrorIs(t, err, ErrTaskDataInvalid)
	})
}

func TestCompleteTask(t *testing.T) {
	service, ctx := setup()

	// given
	created, err := service.Create(ctx, Task{Title: "Prepare proposal", Status: StatusInProgress})
	assert.NoError(t, err)

	// when
	created.Status = StatusCompleted
	updated, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, testNow, *updated.CompletedAt)
}

func TestGetUpcomingTasks(t *testing.T) {
	service, ctx := setup()

	// given
	tomorrow := testNow.Add(24 * time.Hour)
	nextWeek := testNow.Add(7 * 24 * time.Hour)
	yesterday := testNow.Add(-24 * time.Hour)

	_, err := service.Create(ctx, Task{Title: "Due tomorrow", DueDate: &tomorrow})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Task{Title: "Due next week", DueDate: &nextWeek})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Task{Title: "Overdue", DueDate: &yesterday})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Task{Title: "Done", DueDate: &tomorrow, Status: StatusCompleted})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Task{Title: "No due date"})
	assert.NoError(t, err)

	// when
	upcoming, err := service.GetUpcoming(ctx, 5)

	// then
	assert.NoError(t, err)
	assert.Len(t, upcoming, 3)
	assert.Equal(t, "Due tomorrow", upcoming[0].Title)
	assert.Equal(t, "Due next week", upcoming[1].Title)
	assert.Equal(t, "No due date", upcoming[2].Title)
}
