package google

import (
	"context"
	"fmt"

	"github.com/RSanjanaS/APP-development-C2G/pkg/schedule"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Exporter interface {
	// ExportPayments pushes every scheduled payment into the user's Google
	// calendar as an all-day event and returns how many were exported.
	ExportPayments(ctx context.Context, calendarId string) (int, error)
}

type ExporterImpl struct {
	auth            *Auth
	scheduleService schedule.Service
}

func NewExporter(auth *Auth, scheduleService schedule.Service) *ExporterImpl {
	return &ExporterImpl{
		auth:            auth,
		scheduleService: scheduleService,
	}
}

func (e *ExporterImpl) ExportPayments(ctx context.Context, calendarId string) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := e.prepareGoogleService(ctx, userId)
	if err != nil {
		return 0, err
	}

	records, err := e.scheduleService.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, record := range records {
		event := paymentToEvent(record)
		_, err := googleService.Events.Insert(calendarId, event).Context(ctx).Do()
		if err != nil {
			log.Errorf("unable to export payment %s to Google Calendar: %v", record.UID, err)
			return exported, fmt.Errorf("unable to export payment to Google Calendar: %w", err)
		}
		exported++
	}
	return exported, nil
}

func (e *ExporterImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := e.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}

func paymentToEvent(record schedule.PaymentRecord) *calendar.Event {
	description := record.Notes
	if description == "" {
		description = fmt.Sprintf("%s payment of %s", record.Category, record.Amount)
	}
	return &calendar.Event{
		Summary:      fmt.Sprintf("%s (%s)", record.Title, record.Amount),
		Description:  description,
		Start:        &calendar.EventDateTime{Date: record.Date},
		End:          &calendar.EventDateTime{Date: record.Date},
		Transparency: "transparent",
	}
}
