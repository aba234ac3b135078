package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*ServiceImpl, *StubRepository) {
	t.Helper()
	repo := NewStubRepository()
	service := NewService(repo, test_utils.TestUserProvider{}, event_bus.NewEventBus())
	return service, repo
}

func TestServiceImpl_Schedule(t *testing.T) {
	t.Run("should append records in insertion order", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		first, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Electricity bill", Amount: "1200", Date: "2026-09-10", Category: CategoryUtility,
		})
		require.NoError(t, err)
		second, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Phone recharge", Amount: "299", Date: "2026-09-05",
		})
		require.NoError(t, err)

		// then
		records, err := service.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, first.UID, records[0].UID)
		assert.Equal(t, second.UID, records[1].UID)
		assert.Equal(t, "Electricity bill", records[0].Title)
	})

	t.Run("should keep records readable by a freshly built service over the same store", func(t *testing.T) {
		// given
		service, repo := setup(t)
		scheduled, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Electricity bill", Amount: "1200", Date: "2026-09-10", Category: CategoryUtility,
		})
		require.NoError(t, err)

		// when
		restarted := NewService(repo, test_utils.TestUserProvider{}, event_bus.NewEventBus())
		records, err := restarted.ListAll(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, scheduled.UID, records[0].UID)
		assert.Equal(t, "Electricity bill", records[0].Title)
	})

	t.Run("should apply category and frequency defaults and set status", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		record, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Phone recharge", Amount: "299", Date: "2026-09-05",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, CategoryRecharge, record.Category)
		assert.Equal(t, FrequencyOneTime, record.Frequency)
		assert.Equal(t, StatusScheduled, record.Status)
		assert.NotEmpty(t, record.UID)
	})

	t.Run("should reject a record with missing required fields", func(t *testing.T) {
		// given
		service, repo := setup(t)

		// when
		_, err := service.Schedule(context.Background(), PaymentRecord{Title: "No amount"})

		// then
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "date")
		assert.Zero(t, repo.SaveCalls)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		_, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Refund", Amount: "-10", Date: "2026-09-05",
		})

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		_, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Groceries", Amount: "500", Date: "2026-09-05", Category: "Groceries",
		})

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should leave the stored list untouched when the write fails", func(t *testing.T) {
		// given
		service, repo := setup(t)
		_, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Rent", Amount: "15000", Date: "2026-09-01", Category: CategoryRent,
		})
		require.NoError(t, err)
		repo.SaveErr = errors.New("disk full")

		// when
		_, err = service.Schedule(context.Background(), PaymentRecord{
			Title: "Phone recharge", Amount: "299", Date: "2026-09-05",
		})

		// then
		require.Error(t, err)
		repo.SaveErr = nil
		records, err := service.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Rent", records[0].Title)
	})
}

func TestServiceImpl_ListAll(t *testing.T) {
	t.Run("should return an empty list when nothing was ever stored", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		records, err := service.ListAll(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("should report corrupt data when the stored blob does not decode", func(t *testing.T) {
		// given
		service, repo := setup(t)
		repo.Data[123] = []byte("{not json")

		// when
		_, err := service.ListAll(context.Background())

		// then
		assert.ErrorIs(t, err, ErrCorruptData)
	})

	t.Run("should return a snapshot the caller can modify", func(t *testing.T) {
		// given
		service, _ := setup(t)
		_, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Rent", Amount: "15000", Date: "2026-09-01", Category: CategoryRent,
		})
		require.NoError(t, err)

		// when
		records, err := service.ListAll(context.Background())
		require.NoError(t, err)
		records[0].Title = "Changed"

		// then
		again, err := service.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Rent", again[0].Title)
	})
}

func TestServiceImpl_ListForDate(t *testing.T) {
	t.Run("should return only records with the exact date", func(t *testing.T) {
		// given
		service, _ := setup(t)
		for _, r := range []PaymentRecord{
			{Title: "Rent", Amount: "15000", Date: "2026-09-01", Category: CategoryRent},
			{Title: "Phone recharge", Amount: "299", Date: "2026-09-05"},
			{Title: "Netflix", Amount: "649", Date: "2026-09-01", Category: CategorySubscription},
		} {
			_, err := service.Schedule(context.Background(), r)
			require.NoError(t, err)
		}

		// when
		records, err := service.ListForDate(context.Background(), "2026-09-01")

		// then
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Rent", records[0].Title)
		assert.Equal(t, "Netflix", records[1].Title)
	})

	t.Run("should return an empty list for a date with no payments", func(t *testing.T) {
		// given
		service, _ := setup(t)

		// when
		records, err := service.ListForDate(context.Background(), "2026-12-31")

		// then
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestServiceImpl_Schedule_PublishesEvent(t *testing.T) {
	t.Run("should publish a scheduled event after persisting", func(t *testing.T) {
		// given
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, test_utils.TestUserProvider{}, bus)
		var received []event_bus.PaymentScheduledEvent
		event_bus.SubscribeTyped(bus, event_bus.PaymentScheduled, func(e event_bus.EventT[event_bus.PaymentScheduledEvent]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		record, err := service.Schedule(context.Background(), PaymentRecord{
			Title: "Rent", Amount: "15000", Date: "2026-09-01", Category: CategoryRent,
		})

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, record.UID, received[0].UID)
		assert.Equal(t, "Rent", received[0].Title)
	})
}

func TestServiceImpl_DueOn(t *testing.T) {
	t.Run("should include recurring payments past their start date", func(t *testing.T) {
		// given
		service, repo := setup(t)
		records := []PaymentRecord{
			{UID: "a", Title: "Rent", Amount: "15000", Date: "2026-06-01", Category: CategoryRent, Frequency: FrequencyMonthly, Status: StatusScheduled},
			{UID: "b", Title: "Insurance", Amount: "8000", Date: "2026-06-01", Category: CategoryInsurance, Frequency: FrequencyYearly, Status: StatusScheduled},
			{UID: "c", Title: "One off", Amount: "100", Date: "2026-06-01", Category: CategoryRecharge, Frequency: FrequencyOneTime, Status: StatusScheduled},
		}
		data, err := json.Marshal(records)
		require.NoError(t, err)
		repo.Data[123] = data

		// when
		day, _ := time.Parse(DateLayout, "2026-09-01")
		due, err := service.DueOn(context.Background(), day)

		// then
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "a", due[0].UID)
	})
}
