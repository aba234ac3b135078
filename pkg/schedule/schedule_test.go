package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRecord_Validate(t *testing.T) {
	t.Run("should normalize the amount", func(t *testing.T) {
		// given
		record := PaymentRecord{Title: "Rent", Amount: "15000.50", Date: "2026-09-01"}

		// when
		err := record.Validate()

		// then
		require.NoError(t, err)
		assert.Equal(t, "15000.5", record.Amount)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		// given
		record := PaymentRecord{Title: "Rent", Amount: "15000", Date: "01-09-2026"}

		// when
		err := record.Validate()

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a non-numeric amount", func(t *testing.T) {
		// given
		record := PaymentRecord{Title: "Rent", Amount: "lots", Date: "2026-09-01"}

		// when
		err := record.Validate()

		// then
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should name every missing required field", func(t *testing.T) {
		// given
		record := PaymentRecord{}

		// when
		err := record.Validate()

		// then
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "date")
	})
}

func TestPaymentRecord_NextDueDate(t *testing.T) {
	mustDate := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		require.NoError(t, err)
		return d
	}

	t.Run("should return the scheduled date when it has not passed yet", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-09-10", Frequency: FrequencyOneTime}

		next, ok := record.NextDueDate(mustDate("2026-09-01"))

		require.True(t, ok)
		assert.Equal(t, mustDate("2026-09-10"), next)
	})

	t.Run("should step a monthly payment forward", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-06-15", Frequency: FrequencyMonthly}

		next, ok := record.NextDueDate(mustDate("2026-09-01"))

		require.True(t, ok)
		assert.Equal(t, mustDate("2026-09-15"), next)
	})

	t.Run("should step a quarterly payment forward", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-01-01", Frequency: FrequencyQuarterly}

		next, ok := record.NextDueDate(mustDate("2026-05-02"))

		require.True(t, ok)
		assert.Equal(t, mustDate("2026-07-01"), next)
	})

	t.Run("should report no further occurrence for a past one-time payment", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-01-01", Frequency: FrequencyOneTime}

		_, ok := record.NextDueDate(mustDate("2026-09-01"))

		assert.False(t, ok)
	})
}

func TestPaymentRecord_DueOn(t *testing.T) {
	mustDate := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		require.NoError(t, err)
		return d
	}

	t.Run("should be due on the scheduled date itself", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-09-01", Frequency: FrequencyOneTime}
		assert.True(t, record.DueOn(mustDate("2026-09-01")))
	})

	t.Run("should not be due before the scheduled date", func(t *testing.T) {
		record := PaymentRecord{Date: "2026-09-01", Frequency: FrequencyMonthly}
		assert.False(t, record.DueOn(mustDate("2026-08-01")))
	})

	t.Run("should recur yearly on the anniversary", func(t *testing.T) {
		record := PaymentRecord{Date: "2025-03-10", Frequency: FrequencyYearly}
		assert.True(t, record.DueOn(mustDate("2026-03-10")))
		assert.False(t, record.DueOn(mustDate("2026-03-11")))
	})
}
