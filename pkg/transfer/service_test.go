package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_CreateTransfer(t *testing.T) {
	t.Run("should record a valid transfer and publish an event", func(t *testing.T) {
		// given
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, test_utils.TestUserProvider{}, bus)
		var received []event_bus.TransferCreatedEvent
		event_bus.SubscribeTyped(bus, event_bus.TransferCreated, func(e event_bus.EventT[event_bus.TransferCreatedEvent]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		created, err := service.CreateTransfer(context.Background(), Transfer{
			Counterparty: "Landlord",
			Amount:       decimal.RequireFromString("15000"),
			Category:     "Rent",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
		require.Len(t, received, 1)
		assert.Equal(t, "15000", received[0].Amount)
	})

	t.Run("should reject an empty counterparty", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository(), test_utils.TestUserProvider{}, event_bus.NewEventBus())

		// when
		_, err := service.CreateTransfer(context.Background(), Transfer{
			Amount: decimal.RequireFromString("100"),
		})

		// then
		assert.ErrorIs(t, err, ErrTransferInvalid)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository(), test_utils.TestUserProvider{}, event_bus.NewEventBus())

		// when
		_, err := service.CreateTransfer(context.Background(), Transfer{
			Counterparty: "Landlord",
			Amount:       decimal.Zero,
		})

		// then
		assert.ErrorIs(t, err, ErrTransferInvalid)
	})
}

func TestRepositoryImpl_Transfers(t *testing.T) {
	t.Run("should store and list transfers within the range", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepository(db)
		base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		for i, counterparty := range []string{"Landlord", "Grocer", "Barber"} {
			_, err := repo.CreateTransfer(context.Background(), 1, Transfer{
				Counterparty: counterparty,
				Amount:       decimal.NewFromInt(int64(100 * (i + 1))),
				Category:     "Misc",
				CreatedAt:    base.AddDate(0, 0, i),
			})
			require.NoError(t, err)
		}

		// when
		transfers, err := repo.GetTransfers(context.Background(), 1, base, base.AddDate(0, 0, 2))

		// then
		require.NoError(t, err)
		require.Len(t, transfers, 2)
		assert.Equal(t, "Landlord", transfers[0].Counterparty)
		assert.Equal(t, "Grocer", transfers[1].Counterparty)
		assert.True(t, transfers[0].Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("should not return another user's transfers", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepository(db)
		now := time.Now().UTC()
		_, err := repo.CreateTransfer(context.Background(), 2, Transfer{
			Counterparty: "Landlord",
			Amount:       decimal.NewFromInt(100),
			CreatedAt:    now,
		})
		require.NoError(t, err)

		// when
		transfers, err := repo.GetTransfers(context.Background(), 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))

		// then
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})
}
