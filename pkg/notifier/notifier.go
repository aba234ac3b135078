package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/internal/utils"
	"github.com/RSanjanaS/APP-development-C2G/pkg/schedule"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// reminderSpec fires the due-payment sweep every morning at 08:00.
const reminderSpec = "0 8 * * *"

// Notifier runs the daily reminder sweep. For every user it finds the
// payments due that day, publishes a due event per payment, and mails the
// user a summary when they have an email address on file.
type Notifier struct {
	scheduleService schedule.Service
	userService     user.Service
	eventBus        *event_bus.EventBus
	sender          Sender
	clock           utils.Clock
	cron            *cron.Cron
}

func NewNotifier(scheduleService schedule.Service, userService user.Service, eventBus *event_bus.EventBus, sender Sender, clock utils.Clock) *Notifier {
	return &Notifier{
		scheduleService: scheduleService,
		userService:     userService,
		eventBus:        eventBus,
		sender:          sender,
		clock:           clock,
		cron:            cron.New(),
	}
}

func (n *Notifier) Start() error {
	_, err := n.cron.AddFunc(reminderSpec, func() {
		if err := n.RunOnce(context.Background()); err != nil {
			log.Errorf("Reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register reminder job: %w", err)
	}
	n.cron.Start()
	log.Info("Payment reminder job started")
	return nil
}

func (n *Notifier) Stop() {
	n.cron.Stop()
}

// RunOnce performs a single sweep over all users for the current day.
func (n *Notifier) RunOnce(ctx context.Context) error {
	today := n.clock.Now().UTC()

	users, err := n.userService.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range users {
		userCtx := user.WithUser(ctx, u)
		due, err := n.scheduleService.DueOn(userCtx, today)
		if err != nil {
			log.Errorf("Error finding due payments for user %d: %v", u.Id, err)
			continue
		}
		if len(due) == 0 {
			continue
		}

		for _, record := range due {
			err := n.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.PaymentDue, event_bus.PaymentDueEvent{
				UserId:   u.Id,
				UID:      record.UID,
				Title:    record.Title,
				Amount:   record.Amount,
				Date:     record.Date,
				Category: string(record.Category),
			}))
			if err != nil {
				log.Warnf("Error publishing payment due event: %v", err)
			}
		}

		if u.Email == "" || n.sender == nil {
			continue
		}
		if err := n.sender.Send(u.Email, reminderSubject(due), reminderBody(u, due, today.Format(schedule.DateLayout))); err != nil {
			log.Errorf("Error mailing reminder to user %d: %v", u.Id, err)
		}
	}
	return nil
}

func reminderSubject(due []schedule.PaymentRecord) string {
	if len(due) == 1 {
		return fmt.Sprintf("Payment due today: %s", due[0].Title)
	}
	return fmt.Sprintf("%d payments due today", len(due))
}

func reminderBody(u user.User, due []schedule.PaymentRecord, day string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following payments are due on %s:\n\n", u.DisplayName, day)
	for _, record := range due {
		fmt.Fprintf(&b, "  - %s: %s %s (%s)\n", record.Title, record.Amount, u.Settings.Currency, record.Category)
	}
	b.WriteString("\nOpen the app to review them.\n")
	return b.String()
}
