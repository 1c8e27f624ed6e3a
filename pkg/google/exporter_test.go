package google

import (
	"testing"
	"time"

	"github.com/gestio-app/gestio/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGoogleEvent(t *testing.T) {
	location, err := time.LoadLocation("Europe/Bucharest")
	require.NoError(t, err)

	t.Run("should format timed events in the user timezone", func(t *testing.T) {
		// given
		event := calendar.Event{
			Title:       "Kickoff meeting",
			Description: "Agenda in the shared doc",
			StartTime:   time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC),
		}

		// when
		result := toGoogleEvent(event, location)

		// then
		assert.Equal(t, "Kickoff meeting", result.Summary)
		assert.Equal(t, "2025-04-10T11:00:00+03:00", result.Start.DateTime)
		assert.Equal(t, "2025-04-10T12:00:00+03:00", result.End.DateTime)
		assert.Empty(t, result.Start.Date)
	})

	t.Run("should use an exclusive end date for all-day events", func(t *testing.T) {
		// given
		event := calendar.Event{
			Title:     "Trade fair",
			AllDay:    true,
			StartTime: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		}

		// when
		result := toGoogleEvent(event, time.UTC)

		// then
		assert.Equal(t, "2025-04-10", result.Start.Date)
		assert.Equal(t, "2025-04-12", result.End.Date)
		assert.Empty(t, result.Start.DateTime)
	})
}

func TestEventsInRange(t *testing.T) {
	// given
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	events := []calendar.Event{
		{Id: 1, Title: "Before", StartTime: time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)},
		{Id: 2, Title: "Inside", StartTime: time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)},
		{Id: 3, Title: "After", StartTime: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)},
	}

	// when
	result := eventsInRange(events, from, to)

	// then
	assert.Len(t, result, 1)
	assert.Equal(t, "Inside", result[0].Title)
}
