package calendar

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

func TestCreateEvent(t *testing.T) {
	service, ctx := setup()

	t.Run("should create a valid event", func(t *testing.T) {
		// when
		created, err := service.Create(ctx, Event{
			Title:     "Kickoff meeting",
			StartTime: testNow.Add(time.Hour),
			EndTime:   testNow.Add(2 * time.Hour),
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
	})

	t.Run("should reject an event ending before it starts", func(t *testing.T) {
		// when
		_, err := service.Create(ctx, Event{
			Title:     "Impossible",
			StartTime: testNow.Add(2 * time.Hour),
			EndTime:   testNow.Add(time.Hour),
		})

		// then
		assert.ErrorIs(t, err, ErrEventDataInvalid)
	})
}

func TestGetUpcomingEvents(t *testing.T) {
	service, ctx := setup()

	// given
	mk := func(title string, offset time.Duration) {
		_, err := service.Create(ctx, Event{
			Title:     title,
			StartTime: testNow.Add(offset),
			EndTime:   testNow.Add(offset + time.Hour),
		})
		assert.NoError(t, err)
	}
	mk("Past", -48*time.Hour)
	mk("Soon", 2*time.Hour)
	mk("Later", 72*time.Hour)

	// when
	upcoming, err := service.GetUpcoming(ctx, 2)

	// then
	assert.NoError(t, err)
	assert.Len(t, upcoming, 2)
	assert.Equal(t, "Soon", upcoming[0].Title)
	assert.Equal(t, "Later", upcoming[1].Title)
}
