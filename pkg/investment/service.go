package investment

import (
	"context"
	"fmt"
	"sort"

	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	SortByPrice = "price"
	SortByGain  = "gain"
)

type Service interface {
	AddHolding(ctx context.Context, holding Holding) (Holding, error)
	ListHoldings(ctx context.Context) ([]Holding, error)
	DeleteHolding(ctx context.Context, holdingId int) error
	Portfolio(ctx context.Context, filter AssetType, sortBy string) (Portfolio, error)
}

type ServiceImpl struct {
	repo        Repository
	stocks      QuoteClient
	crypto      QuoteClient
	userService user.Provider
}

func NewService(repo Repository, stocks, crypto QuoteClient, userService user.Provider) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		stocks:      stocks,
		crypto:      crypto,
		userService: userService,
	}
}

func (s *ServiceImpl) AddHolding(ctx context.Context, holding Holding) (Holding, error) {
	if err := holding.Validate(); err != nil {
		return Holding{}, err
	}
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return Holding{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.CreateHolding(ctx, currentUser.Id, holding)
}

func (s *ServiceImpl) ListHoldings(ctx context.Context) ([]Holding, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetHoldings(ctx, currentUser.Id)
}

func (s *ServiceImpl) DeleteHolding(ctx context.Context, holdingId int) error {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteHolding(ctx, currentUser.Id, holdingId)
}

// Portfolio values every holding at its current market price. Totals and the
// allocation breakdown always cover the whole portfolio; filter and sortBy
// only shape the returned position list.
func (s *ServiceImpl) Portfolio(ctx context.Context, filter AssetType, sortBy string) (Portfolio, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return Portfolio{}, fmt.Errorf("failed to get current user: %w", err)
	}
	holdings, err := s.repo.GetHoldings(ctx, currentUser.Id)
	if err != nil {
		return Portfolio{}, err
	}

	positions, err := s.valuate(ctx, holdings)
	if err != nil {
		return Portfolio{}, err
	}

	portfolio := Portfolio{
		Allocation: make(map[AssetType]decimal.Decimal),
	}
	valueByType := make(map[AssetType]decimal.Decimal)
	for _, p := range positions {
		portfolio.TotalValue = portfolio.TotalValue.Add(p.Value)
		portfolio.TotalInvested = portfolio.TotalInvested.Add(p.Cost())
		valueByType[p.Type] = valueByType[p.Type].Add(p.Value)
	}
	portfolio.GainLoss = portfolio.TotalValue.Sub(portfolio.TotalInvested)
	if portfolio.TotalValue.IsPositive() {
		for assetType, value := range valueByType {
			portfolio.Allocation[assetType] = value.Div(portfolio.TotalValue).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	if filter != "" {
		filtered := make([]Position, 0, len(positions))
		for _, p := range positions {
			if p.Type == filter {
				filtered = append(filtered, p)
			}
		}
		positions = filtered
	}

	switch sortBy {
	case SortByPrice:
		sort.SliceStable(positions, func(i, j int) bool {
			return positions[i].Price.GreaterThan(positions[j].Price)
		})
	case SortByGain:
		sort.SliceStable(positions, func(i, j int) bool {
			return positions[i].GainLoss.GreaterThan(positions[j].GainLoss)
		})
	}

	portfolio.Positions = positions
	return portfolio, nil
}

// valuate quotes all holdings concurrently. A single failed quote fails the
// whole valuation rather than reporting a partial portfolio.
func (s *ServiceImpl) valuate(ctx context.Context, holdings []Holding) ([]Position, error) {
	positions := make([]Position, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	for i, holding := range holdings {
		g.Go(func() error {
			client := s.stocks
			if holding.Type == AssetCrypto {
				client = s.crypto
			}
			price, err := client.Quote(gctx, holding.Symbol)
			if err != nil {
				return err
			}
			value := holding.Quantity.Mul(price)
			positions[i] = Position{
				Holding:  holding,
				Price:    price,
				Value:    value,
				GainLoss: value.Sub(holding.Cost()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return positions, nil
}
