package statement

import (
	"context"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/pkg/transfer"
	"github.com/shopspring/decimal"
)

type Service interface {
	Build(ctx context.Context, from, to time.Time) (Statement, error)
}

type ServiceImpl struct {
	transferService transfer.Service
}

func NewService(transferService transfer.Service) *ServiceImpl {
	return &ServiceImpl{transferService: transferService}
}

// Build assembles the statement for the half-open range [from, to).
func (s *ServiceImpl) Build(ctx context.Context, from, to time.Time) (Statement, error) {
	transfers, err := s.transferService.GetTransfers(ctx, from, to)
	if err != nil {
		return Statement{}, err
	}

	statement := Statement{
		From:          from,
		To:            to,
		Lines:         make([]Line, 0, len(transfers)),
		CategoryTotal: make(map[string]decimal.Decimal),
		Total:         decimal.Zero,
	}
	for _, t := range transfers {
		statement.Lines = append(statement.Lines, Line{
			Date:         t.CreatedAt,
			Counterparty: t.Counterparty,
			Category:     t.Category,
			Amount:       t.Amount,
		})
		statement.CategoryTotal[t.Category] = statement.CategoryTotal[t.Category].Add(t.Amount)
		statement.Total = statement.Total.Add(t.Amount)
	}
	return statement, nil
}
