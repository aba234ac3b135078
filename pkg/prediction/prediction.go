package prediction

import "github.com/shopspring/decimal"

// Forecast estimates next month's outgoings from past transfers and
// upcoming scheduled payments.
type Forecast struct {
	AverageMonthlySpend decimal.Decimal
	UpcomingScheduled   decimal.Decimal
	ProjectedTotal      decimal.Decimal
	TopCategories       []CategorySpend
}

type CategorySpend struct {
	Category string
	Total    decimal.Decimal
}
