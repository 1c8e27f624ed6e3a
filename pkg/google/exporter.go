package google

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio-app/gestio/pkg/calendar"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

// Exporter pushes business events into a single Google Calendar. The
// export is one-way: events created or changed on the Google side are
// never read back.
type Exporter struct {
	service    *gcal.Service
	calendarId string
}

func newExporter(service *gcal.Service, calendarId string) *Exporter {
	return &Exporter{service: service, calendarId: calendarId}
}

func (e *Exporter) ExportEvents(_ context.Context, events []calendar.Event, timezone string) (int, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		err := fmt.Errorf("could not load location for timezone %s", timezone)
		log.Error(err)
		return 0, err
	}

	exported := 0
	for _, event := range events {
		log.Debugf("Exporting event %d to calendar: %s", event.Id, e.calendarId)
		_, err := e.service.Events.Insert(e.calendarId, toGoogleEvent(event, location)).Do()
		if err != nil {
			err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
			log.Error(err)
			return exported, err
		}
		exported++
	}
	return exported, nil
}

func toGoogleEvent(event calendar.Event, location *time.Location) *gcal.Event {
	if event.AllDay {
		return &gcal.Event{
			Summary:     event.Title,
			Description: event.Description,
			Start: &gcal.EventDateTime{
				Date: event.StartTime.In(location).Format("2006-01-02"),
			},
			// Google treats the end date of all-day events as exclusive.
			End: &gcal.EventDateTime{
				Date: event.EndTime.In(location).AddDate(0, 0, 1).Format("2006-01-02"),
			},
		}
	}
	return &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.StartTime.In(location).Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: event.EndTime.In(location).Format(time.RFC3339),
		},
	}
}
