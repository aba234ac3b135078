package prediction

import (
	"context"
	"sort"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/utils"
	"github.com/RSanjanaS/APP-development-C2G/pkg/schedule"
	"github.com/RSanjanaS/APP-development-C2G/pkg/transfer"
	"github.com/shopspring/decimal"
)

// lookbackMonths is how far back the average is taken over.
const lookbackMonths = 3

const topCategoryCount = 3

type Service interface {
	Forecast(ctx context.Context) (Forecast, error)
}

type ServiceImpl struct {
	transferService transfer.Service
	scheduleService schedule.Service
	clock           utils.Clock
}

func NewService(transferService transfer.Service, scheduleService schedule.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		transferService: transferService,
		scheduleService: scheduleService,
		clock:           clock,
	}
}

// Forecast averages the past months' transfers and adds every scheduled
// payment falling due within the next month.
func (s *ServiceImpl) Forecast(ctx context.Context) (Forecast, error) {
	now := s.clock.Now().UTC()
	from := now.AddDate(0, -lookbackMonths, 0)

	transfers, err := s.transferService.GetTransfers(ctx, from, now)
	if err != nil {
		return Forecast{}, err
	}

	spent := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range transfers {
		spent = spent.Add(t.Amount)
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}
	average := spent.Div(decimal.NewFromInt(lookbackMonths)).Round(2)

	upcoming, err := s.upcomingScheduled(ctx, now, now.AddDate(0, 1, 0))
	if err != nil {
		return Forecast{}, err
	}

	return Forecast{
		AverageMonthlySpend: average,
		UpcomingScheduled:   upcoming,
		ProjectedTotal:      average.Add(upcoming),
		TopCategories:       topCategories(byCategory),
	}, nil
}

func (s *ServiceImpl) upcomingScheduled(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	records, err := s.scheduleService.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range records {
		next, ok := r.NextDueDate(from)
		if !ok || !next.Before(to) {
			continue
		}
		amount, err := r.AmountValue()
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total, nil
}

func topCategories(byCategory map[string]decimal.Decimal) []CategorySpend {
	spends := make([]CategorySpend, 0, len(byCategory))
	for category, total := range byCategory {
		spends = append(spends, CategorySpend{Category: category, Total: total})
	}
	sort.Slice(spends, func(i, j int) bool {
		if !spends[i].Total.Equal(spends[j].Total) {
			return spends[i].Total.GreaterThan(spends[j].Total)
		}
		return spends[i].Category < spends[j].Category
	})
	if len(spends) > topCategoryCount {
		spends = spends[:topCategoryCount]
	}
	return spends
}
