package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrCorruptData is returned when a stored payment list exists but cannot be
// decoded. An absent list is not corrupt and loads as empty.
var ErrCorruptData = errors.New("stored payment data is corrupt")

type Service interface {
	Schedule(ctx context.Context, record PaymentRecord) (PaymentRecord, error)
	ListAll(ctx context.Context) ([]PaymentRecord, error)
	ListForDate(ctx context.Context, date string) ([]PaymentRecord, error)
	CalendarIndex(ctx context.Context) (map[string]DayMarker, error)
	DueOn(ctx context.Context, day time.Time) ([]PaymentRecord, error)
}

type ServiceImpl struct {
	repo        Repository
	userService user.Provider
	eventBus    *event_bus.EventBus

	// mu serializes every load-modify-save cycle so concurrent schedules
	// cannot clobber each other's appends.
	mu sync.Mutex
}

func NewService(repo Repository, userService user.Provider, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		userService: userService,
		eventBus:    eventBus,
	}
}

// Schedule validates the record, appends it to the stored list, and persists
// the whole list in a single write. When the write fails the append is rolled
// back and the stored list is left untouched.
func (s *ServiceImpl) Schedule(ctx context.Context, record PaymentRecord) (PaymentRecord, error) {
	if err := record.Validate(); err != nil {
		return PaymentRecord{}, err
	}
	if record.UID == "" {
		record.UID = uuid.New().String()
	}

	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("failed to get current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx, currentUser.Id)
	if err != nil {
		return PaymentRecord{}, err
	}

	records = append(records, record)
	data, err := json.Marshal(records)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("failed to encode payment list: %w", err)
	}
	if err := s.repo.Save(ctx, currentUser.Id, data); err != nil {
		log.Errorf("Error persisting payment list for user %d: %v", currentUser.Id, err)
		return PaymentRecord{}, fmt.Errorf("failed to persist payment list: %w", err)
	}

	if s.eventBus != nil {
		err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.PaymentScheduled, event_bus.PaymentScheduledEvent{
			UID:      record.UID,
			Title:    record.Title,
			Amount:   record.Amount,
			Date:     record.Date,
			Category: string(record.Category),
		}))
		if err != nil {
			log.Warnf("Error publishing payment scheduled event: %v", err)
		}
	}
	return record, nil
}

// ListAll returns every stored record in insertion order. The returned slice
// is a snapshot the caller may modify freely.
func (s *ServiceImpl) ListAll(ctx context.Context) ([]PaymentRecord, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, currentUser.Id)
}

// ListForDate returns the records whose date exactly matches the given
// YYYY-MM-DD string, preserving insertion order.
func (s *ServiceImpl) ListForDate(ctx context.Context, date string) ([]PaymentRecord, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]PaymentRecord, 0)
	for _, r := range records {
		if r.Date == date {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

// CalendarIndex builds the date-to-marker map for every stored record.
func (s *ServiceImpl) CalendarIndex(ctx context.Context) (map[string]DayMarker, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildIndex(records), nil
}

// DueOn returns the records due on the given day, including recurring
// occurrences past the original date.
func (s *ServiceImpl) DueOn(ctx context.Context, day time.Time) ([]PaymentRecord, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	due := make([]PaymentRecord, 0)
	for _, r := range records {
		if r.DueOn(day) {
			due = append(due, r)
		}
	}
	return due, nil
}

// load reads and decodes the stored list. Callers hold s.mu when the result
// feeds a save.
func (s *ServiceImpl) load(ctx context.Context, userId int) ([]PaymentRecord, error) {
	data, found, err := s.repo.Load(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !found {
		return []PaymentRecord{}, nil
	}
	var records []PaymentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Errorf("Error decoding stored payment list for user %d: %v", userId, err)
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if records == nil {
		records = []PaymentRecord{}
	}
	return records, nil
}
