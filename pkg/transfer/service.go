package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrTransferInvalid = errors.New("transfer is invalid")

type Service interface {
	CreateTransfer(ctx context.Context, t Transfer) (Transfer, error)
	GetTransfers(ctx context.Context, from, to time.Time) ([]Transfer, error)
}

type ServiceImpl struct {
	repo        Repository
	userService user.Provider
	eventBus    *event_bus.EventBus
}

func NewService(repo Repository, userService user.Provider, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		userService: userService,
		eventBus:    eventBus,
	}
}

func (s *ServiceImpl) CreateTransfer(ctx context.Context, t Transfer) (Transfer, error) {
	if strings.TrimSpace(t.Counterparty) == "" {
		return Transfer{}, fmt.Errorf("%w: counterparty is required", ErrTransferInvalid)
	}
	if !t.Amount.IsPositive() {
		return Transfer{}, fmt.Errorf("%w: amount must be positive", ErrTransferInvalid)
	}

	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return Transfer{}, fmt.Errorf("failed to get current user: %w", err)
	}

	created, err := s.repo.CreateTransfer(ctx, currentUser.Id, t)
	if err != nil {
		return Transfer{}, err
	}

	if s.eventBus != nil {
		err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TransferCreated, event_bus.TransferCreatedEvent{
			Id:           created.Id,
			Counterparty: created.Counterparty,
			Amount:       created.Amount.String(),
		}))
		if err != nil {
			log.Warnf("Error publishing transfer created event: %v", err)
		}
	}
	return created, nil
}

func (s *ServiceImpl) GetTransfers(ctx context.Context, from, to time.Time) ([]Transfer, error) {
	currentUser, err := s.userService.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetTransfers(ctx, currentUser.Id, from, to)
}
