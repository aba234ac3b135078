package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	CreateTransfer(ctx context.Context, userId int, t Transfer) (Transfer, error)
	GetTransfers(ctx context.Context, userId int, from, to time.Time) ([]Transfer, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateTransfer(ctx context.Context, userId int, t Transfer) (Transfer, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	query := "INSERT INTO transfer (user_id, counterparty, amount, category, created_at) VALUES (?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, userId, t.Counterparty, t.Amount.String(), t.Category, t.CreatedAt.Unix())
	if err != nil {
		log.Errorf("Error creating transfer for user %d: %v", userId, err)
		return Transfer{}, fmt.Errorf("failed to create transfer: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Transfer{}, fmt.Errorf("failed to read transfer id: %w", err)
	}
	t.Id = int(id)
	return t, nil
}

func (r *RepositoryImpl) GetTransfers(ctx context.Context, userId int, from, to time.Time) ([]Transfer, error) {
	query := `SELECT id, counterparty, amount, category, created_at FROM transfer
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userId, from.Unix(), to.Unix())
	if err != nil {
		log.Errorf("Error listing transfers for user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	transfers := make([]Transfer, 0)
	for rows.Next() {
		var (
			t         Transfer
			amount    string
			createdAt int64
		)
		if err := rows.Scan(&t.Id, &t.Counterparty, &amount, &t.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transfer amount %q: %w", amount, err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}
	return transfers, nil
}
