package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// StatusScheduled is the only status a freshly scheduled payment carries.
const StatusScheduled = "Scheduled"

type Category string

const (
	CategoryRecharge      Category = "Recharge"
	CategoryUtility       Category = "Utility"
	CategoryLoanPayment   Category = "Loan Payment"
	CategorySubscription  Category = "Subscription"
	CategoryInsurance     Category = "Insurance"
	CategoryCreditPayment Category = "Credit Payment"
	CategoryRent          Category = "Rent"
	CategoryInvestment    Category = "Investment"
)

// DefaultCategory applies when a record is scheduled without one.
const DefaultCategory = CategoryRecharge

var categories = map[Category]struct{}{
	CategoryRecharge:      {},
	CategoryUtility:       {},
	CategoryLoanPayment:   {},
	CategorySubscription:  {},
	CategoryInsurance:     {},
	CategoryCreditPayment: {},
	CategoryRent:          {},
	CategoryInvestment:    {},
}

type Frequency string

const (
	FrequencyOneTime   Frequency = "One-Time"
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyYearly    Frequency = "Yearly"
)

const DefaultFrequency = FrequencyOneTime

var frequencies = map[Frequency]struct{}{
	FrequencyOneTime:   {},
	FrequencyMonthly:   {},
	FrequencyQuarterly: {},
	FrequencyYearly:    {},
}

// PaymentRecord is a single scheduled payment. Amount is kept as a string in
// the persisted form so older stored lists keep loading unchanged, and parsed
// on demand.
type PaymentRecord struct {
	UID       string    `json:"uid"`
	Title     string    `json:"title"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	Category  Category  `json:"category"`
	Frequency Frequency `json:"frequency"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
}

var ErrValidation = errors.New("payment record is invalid")

// Validate checks the required fields and normalizes defaults in place.
// Missing optional fields are filled rather than rejected.
func (p *PaymentRecord) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Amount) == "" {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(p.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(p.Amount))
	if err != nil {
		return fmt.Errorf("%w: amount %q is not a number", ErrValidation, p.Amount)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	p.Amount = amount.String()

	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return fmt.Errorf("%w: date %q is not in YYYY-MM-DD format", ErrValidation, p.Date)
	}

	if p.Category == "" {
		p.Category = DefaultCategory
	} else if _, ok := categories[p.Category]; !ok {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}

	if p.Frequency == "" {
		p.Frequency = DefaultFrequency
	} else if _, ok := frequencies[p.Frequency]; !ok {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, p.Frequency)
	}

	p.Status = StatusScheduled
	return nil
}

// AmountValue parses the stored amount. Records that went through Validate
// always parse.
func (p PaymentRecord) AmountValue() (decimal.Decimal, error) {
	return decimal.NewFromString(p.Amount)
}

// DueOn reports whether the record is due on the given day, stepping the
// recurrence forward from the scheduled date.
func (p PaymentRecord) DueOn(day time.Time) bool {
	start, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return false
	}
	day = day.Truncate(24 * time.Hour)
	if day.Before(start) {
		return false
	}
	if start.Equal(day) {
		return true
	}
	switch p.Frequency {
	case FrequencyMonthly:
		return sameRecurrence(start, day, 0, 1)
	case FrequencyQuarterly:
		return sameRecurrence(start, day, 0, 3)
	case FrequencyYearly:
		return sameRecurrence(start, day, 1, 0)
	default:
		return false
	}
}

// NextDueDate returns the first occurrence on or after the given day, or
// false when the record never recurs past its date.
func (p PaymentRecord) NextDueDate(from time.Time) (time.Time, bool) {
	start, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	from = from.Truncate(24 * time.Hour)
	if !start.Before(from) {
		return start, true
	}
	var years, months int
	switch p.Frequency {
	case FrequencyMonthly:
		months = 1
	case FrequencyQuarterly:
		months = 3
	case FrequencyYearly:
		years = 1
	default:
		return time.Time{}, false
	}
	next := start
	for next.Before(from) {
		next = next.AddDate(years, months, 0)
	}
	return next, true
}

func sameRecurrence(start, day time.Time, years, months int) bool {
	next := start
	for next.Before(day) {
		next = next.AddDate(years, months, 0)
	}
	return next.Equal(day)
}
