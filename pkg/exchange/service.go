package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrConversionInvalid = errors.New("conversion request is invalid")

type Conversion struct {
	Id        int
	From      string
	To        string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Fee       decimal.Decimal
	Converted decimal.Decimal
	CreatedAt time.Time
}

type Service interface {
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (Conversion, error)
	History(ctx context.Context) ([]Conversion, error)
}

type ServiceImpl struct {
	primary     RateClient
	fallback    RateClient
	repo        Repository
	userService user.Provider
	feePercent  decimal.Decimal
}

// NewService builds a conversion service. primary is consulted first, the
// fallback source only covers for a primary outage. feePercent is the fee in
// percent of the gross converted amount.
func NewService(primary, fallback RateClient, repo Repository, userService user.Provider, feePercent decimal.Decimal) *ServiceImpl {
	return &ServiceImpl{
		primary:     primary,
		fallback:    fallback,
		repo:        repo,
		userService: userService,
		feePercent:  feePercent,
	}
}

func (s *ServiceImpl) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (Conversion, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return Conversion{}, fmt.Errorf("%w: both currencies are required", ErrConversionInvalid)
	}
	if !amount.IsPositive() {
		return Conversion{}, fmt.Errorf("%w: amount must be positive", ErrConversionInvalid)
	}

	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return Conversion{}, fmt.Errorf("failed to get current user: %w", err)
	}

	rate, err := s.fetchRate(ctx, from, to)
	if err != nil {
		return Conversion{}, err
	}

	gross := amount.Mul(rate)
	fee := gross.Mul(s.feePercent).Div(decimal.NewFromInt(100))
	conversion := Conversion{
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      rate,
		Fee:       fee.Round(2),
		Converted: gross.Sub(fee).Round(2),
		CreatedAt: time.Now().UTC(),
	}

	saved, err := s.repo.SaveConversion(ctx, currentUser.Id, conversion)
	if err != nil {
		return Conversion{}, err
	}
	return saved, nil
}

func (s *ServiceImpl) History(ctx context.Context) ([]Conversion, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetHistory(ctx, currentUser.Id)
}

// fetchRate queries both sources concurrently and prefers the primary.
func (s *ServiceImpl) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	var (
		primaryRate, fallbackRate decimal.Decimal
		primaryErr, fallbackErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primaryRate, primaryErr = s.primary.Rate(gctx, from, to)
		return nil
	})
	if s.fallback != nil {
		g.Go(func() error {
			fallbackRate, fallbackErr = s.fallback.Rate(gctx, from, to)
			return nil
		})
	} else {
		fallbackErr = ErrRateUnavailable
	}
	_ = g.Wait()

	if primaryErr == nil {
		return primaryRate, nil
	}
	if fallbackErr == nil {
		log.Warnf("Primary rate source failed for %s/%s, using fallback: %v", from, to, primaryErr)
		return fallbackRate, nil
	}
	return decimal.Zero, fmt.Errorf("%w: primary: %v, fallback: %v", ErrRateUnavailable, primaryErr, fallbackErr)
}
