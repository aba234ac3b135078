package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/shopspring/decimal"
)

var ErrCardInvalid = errors.New("card is invalid")

type Service interface {
	AddCard(ctx context.Context, card Card) (Card, error)
	GetCards(ctx context.Context) ([]Card, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, cardId int, balance decimal.Decimal) error
}

type ServiceImpl struct {
	repo        Repository
	userService user.Provider
}

func NewService(repo Repository, userService user.Provider) *ServiceImpl {
	return &ServiceImpl{repo: repo, userService: userService}
}

func (s *ServiceImpl) AddCard(ctx context.Context, card Card) (Card, error) {
	if strings.TrimSpace(card.MaskedNumber) == "" {
		return Card{}, fmt.Errorf("%w: masked number is required", ErrCardInvalid)
	}
	if card.Balance.IsNegative() {
		return Card{}, fmt.Errorf("%w: balance cannot be negative", ErrCardInvalid)
	}

	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return Card{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.CreateCard(ctx, currentUser.Id, card)
}

func (s *ServiceImpl) GetCards(ctx context.Context) ([]Card, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCards(ctx, currentUser.Id)
}

// TotalBalance sums the balances of every card in the wallet.
func (s *ServiceImpl) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	cards, err := s.GetCards(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, card := range cards {
		total = total.Add(card.Balance)
	}
	return total, nil
}

func (s *ServiceImpl) UpdateBalance(ctx context.Context, cardId int, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", ErrCardInvalid)
	}
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.UpdateBalance(ctx, currentUser.Id, cardId, balance)
}
