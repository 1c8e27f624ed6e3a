package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setup() (*ServiceImpl, *utils.MockClock, context.Context) {
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	service := NewService(NewStubRepository(), clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, clock, ctx
}

func TestStartTimer(t *testing.T) {
	t.Run("should open a running entry at the current time", func(t *testing.T) {
		service, _, ctx := setup()

		// when
		started, err := service.Start(ctx, TimeEntry{Description: "Design review", Billable: true})

		// then
		assert.NoError(t, err)
		assert.True(t, started.IsRunning())
		assert.Equal(t, testNow, started.StartTime)
		assert.Nil(t, started.Duration)
	})

	t.Run("should reject a second timer while one is running", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		_, err := service.Start(ctx, TimeEntry{Description: "First"})
		assert.NoError(t, err)

		// when
		_, err = service.Start(ctx, TimeEntry{Description: "Second"})

		// then
		assert.ErrorIs(t, err, ErrTimerAlreadyRunning)
	})

	t.Run("should allow timers for different users at the same time", func(t *testing.T) {
		service, _, ctx := setup()
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})

		// given
		_, err := service.Start(ctx, TimeEntry{Description: "Mine"})
		assert.NoError(t, err)

		// when
		_, err = service.Start(otherCtx, TimeEntry{Description: "Theirs"})

		// then
		assert.NoError(t, err)
	})
}

func TestStopTimer(t *testing.T) {
	t.Run("should stamp end time and duration in hours", func(t *testing.T) {
		service, clock, ctx := setup()

		// given
		started, err := service.Start(ctx, TimeEntry{Description: "Design review"})
		assert.NoError(t, err)

		// when
		clock.SetNow(testNow.Add(90 * time.Minute))
		stopped, err := service.Stop(ctx, started.Id)

		// then
		assert.NoError(t, err)
		assert.False(t, stopped.IsRunning())
		assert.NotNil(t, stopped.Duration)
		assert.InDelta(t, 1.5, *stopped.Duration, 1e-9)
	})

	t.Run("should be a no-op when the entry is already stopped", func(t *testing.T) {
		service, clock, ctx := setup()

		// given
		started, err := service.Start(ctx, TimeEntry{})
		assert.NoError(t, err)
		clock.SetNow(testNow.Add(time.Hour))
		first, err := service.Stop(ctx, started.Id)
		assert.NoError(t, err)

		// when
		clock.SetNow(testNow.Add(2 * time.Hour))
		second, err := service.Stop(ctx, started.Id)

		// then
		assert.NoError(t, err)
		assert.Equal(t, first.EndTime, second.EndTime)
		assert.Equal(t, first.Duration, second.Duration)
	})

	t.Run("should return not found for an unknown entry", func(t *testing.T) {
		service, _, ctx := setup()

		// when
		_, err := service.Stop(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestRunningTimer(t *testing.T) {
	t.Run("should return nil when nothing is running", func(t *testing.T) {
		service, _, ctx := setup()

		// when
		running, err := service.Running(ctx)

		// then
		assert.NoError(t, err)
		assert.Nil(t, running)
	})

	t.Run("should return the open entry", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		started, err := service.Start(ctx, TimeEntry{Description: "Design review"})
		assert.NoError(t, err)

		// when
		running, err := service.Running(ctx)

		// then
		assert.NoError(t, err)
		assert.NotNil(t, running)
		assert.Equal(t, started.Id, running.Id)
	})
}

func TestCreateManualEntry(t *testing.T) {
	t.Run("should compute the duration from the supplied span", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		end := testNow.Add(45 * time.Minute)

		// when
		created, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end, Billable: true})

		// then
		assert.NoError(t, err)
		assert.NotNil(t, created.Duration)
		assert.InDelta(t, 0.75, *created.Duration, 1e-9)
	})

	t.Run("should reject an end before the start", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		end := testNow.Add(-time.Minute)

		// when
		_, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end})

		// then
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("should accept a zero-length span", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		end := testNow

		// when
		created, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0.0, *created.Duration)
	})
}

func TestUpdateEntry(t *testing.T) {
	t.Run("should recompute the duration when the span changes", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		end := testNow.Add(time.Hour)
		created, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end})
		assert.NoError(t, err)

		// when
		newEnd := testNow.Add(2 * time.Hour)
		created.EndTime = &newEnd
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.InDelta(t, 2.0, *updated.Duration, 1e-9)
	})

	t.Run("should clear the duration when the end time is removed", func(t *testing.T) {
		service, _, ctx := setup()

		// given
		end := testNow.Add(time.Hour)
		created, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end})
		assert.NoError(t, err)

		// when
		created.EndTime = nil
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Nil(t, updated.Duration)
		assert.True(t, updated.IsRunning())
	})
}

func TestDeleteEntry(t *testing.T) {
	service, _, ctx := setup()

	// given
	end := testNow.Add(time.Hour)
	created, err := service.CreateManual(ctx, TimeEntry{StartTime: testNow, EndTime: &end})
	assert.NoError(t, err)

	// when
	err = service.Delete(ctx, created.Id)

	// then
	assert.NoError(t, err)
	assert.ErrorIs(t, service.Delete(ctx, created.Id), ErrEntryNotFound)
}
