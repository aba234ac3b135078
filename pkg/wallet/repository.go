package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrCardNotFound = errors.New("card not found")

type Repository interface {
	CreateCard(ctx context.Context, userId int, card Card) (Card, error)
	GetCards(ctx context.Context, userId int) ([]Card, error)
	UpdateBalance(ctx context.Context, userId, cardId int, balance decimal.Decimal) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateCard(ctx context.Context, userId int, card Card) (Card, error) {
	query := "INSERT INTO wallet_card (user_id, masked_number, brand, balance, color) VALUES (?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, userId, card.MaskedNumber, card.Brand, card.Balance.String(), card.Color)
	if err != nil {
		log.Errorf("Error creating card for user %d: %v", userId, err)
		return Card{}, fmt.Errorf("failed to create card: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Card{}, fmt.Errorf("failed to read card id: %w", err)
	}
	card.Id = int(id)
	return card, nil
}

func (r *RepositoryImpl) GetCards(ctx context.Context, userId int) ([]Card, error) {
	query := "SELECT id, masked_number, brand, balance, color FROM wallet_card WHERE user_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		log.Errorf("Error listing cards for user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]Card, 0)
	for rows.Next() {
		var (
			card    Card
			balance string
		)
		if err := rows.Scan(&card.Id, &card.MaskedNumber, &card.Brand, &balance, &card.Color); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		card.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse card balance %q: %w", balance, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

func (r *RepositoryImpl) UpdateBalance(ctx context.Context, userId, cardId int, balance decimal.Decimal) error {
	query := "UPDATE wallet_card SET balance = ? WHERE user_id = ? AND id = ?"
	result, err := r.db.ExecContext(ctx, query, balance.String(), userId, cardId)
	if err != nil {
		log.Errorf("Error updating balance of card %d: %v", cardId, err)
		return fmt.Errorf("failed to update card balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}
