package google

import (
	"testing"

	"github.com/RSanjanaS/APP-development-C2G/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func TestPaymentToEvent(t *testing.T) {
	t.Run("should build an all-day event from a payment", func(t *testing.T) {
		// given
		record := schedule.PaymentRecord{
			UID:      "abc",
			Title:    "Rent",
			Amount:   "15000",
			Date:     "2026-09-01",
			Category: schedule.CategoryRent,
			Notes:    "September rent",
		}

		// when
		event := paymentToEvent(record)

		// then
		assert.Equal(t, "Rent (15000)", event.Summary)
		assert.Equal(t, "September rent", event.Description)
		assert.Equal(t, "2026-09-01", event.Start.Date)
		assert.Equal(t, "2026-09-01", event.End.Date)
	})

	t.Run("should describe the payment when there are no notes", func(t *testing.T) {
		// given
		record := schedule.PaymentRecord{
			Title:    "Rent",
			Amount:   "15000",
			Date:     "2026-09-01",
			Category: schedule.CategoryRent,
		}

		// when
		event := paymentToEvent(record)

		// then
		assert.Equal(t, "Rent payment of 15000", event.Description)
	})
}
