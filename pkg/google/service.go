package google

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio-app/gestio/pkg/calendar"
	"github.com/gestio-app/gestio/pkg/user"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type CalendarItem struct {
	ID      string
	Summary string
}

type EventProvider interface {
	GetAll(ctx context.Context) ([]calendar.Event, error)
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ExportEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) (int, error)
}

type ServiceImpl struct {
	auth   *GoogleAuth
	events EventProvider
}

func NewService(auth *GoogleAuth, events EventProvider) *ServiceImpl {
	return &ServiceImpl{
		auth:   auth,
		events: events,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var googleCalendars []CalendarItem
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

func (s *ServiceImpl) ExportEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) (int, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, currentUser.Id)
	if err != nil {
		return 0, err
	}

	events, err := s.events.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events for export: %w", err)
	}
	toExport := eventsInRange(events, from, to)
	log.Debugf("Exporting %d of %d events to calendar %s", len(toExport), len(events), calendarId)

	return newExporter(googleService, calendarId).ExportEvents(ctx, toExport, currentUser.Settings.Timezone)
}

func eventsInRange(events []calendar.Event, from time.Time, to time.Time) []calendar.Event {
	selected := make([]calendar.Event, 0, len(events))
	for _, event := range events {
		if event.StartTime.Before(from) || event.StartTime.After(to) {
			continue
		}
		selected = append(selected, event)
	}
	return selected
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*gcal.Service, error) {

	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
