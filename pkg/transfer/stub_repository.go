package transfer

import (
	"context"
	"time"
)

type StubRepository struct {
	Transfers []Transfer
	Err       error
	nextId    int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{nextId: 1}
}

func (s *StubRepository) CreateTransfer(_ context.Context, _ int, t Transfer) (Transfer, error) {
	if s.Err != nil {
		return Transfer{}, s.Err
	}
	t.Id = s.nextId
	s.nextId++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.Transfers = append(s.Transfers, t)
	return t, nil
}

func (s *StubRepository) GetTransfers(_ context.Context, _ int, from, to time.Time) ([]Transfer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	matching := make([]Transfer, 0)
	for _, t := range s.Transfers {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			matching = append(matching, t)
		}
	}
	return matching, nil
}
