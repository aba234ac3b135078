package exchange

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	SaveConversion(ctx context.Context, userId int, c Conversion) (Conversion, error)
	GetHistory(ctx context.Context, userId int) ([]Conversion, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) SaveConversion(ctx context.Context, userId int, c Conversion) (Conversion, error) {
	query := `INSERT INTO exchange_history (user_id, from_currency, to_currency, amount, rate, fee, converted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, c.From, c.To,
		c.Amount.String(), c.Rate.String(), c.Fee.String(), c.Converted.String(), c.CreatedAt.Unix())
	if err != nil {
		log.Errorf("Error saving conversion for user %d: %v", userId, err)
		return Conversion{}, fmt.Errorf("failed to save conversion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Conversion{}, fmt.Errorf("failed to read conversion id: %w", err)
	}
	c.Id = int(id)
	return c, nil
}

func (r *RepositoryImpl) GetHistory(ctx context.Context, userId int) ([]Conversion, error) {
	query := `SELECT id, from_currency, to_currency, amount, rate, fee, converted, created_at
		FROM exchange_history WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		log.Errorf("Error loading conversion history for user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to load conversion history: %w", err)
	}
	defer rows.Close()

	history := make([]Conversion, 0)
	for rows.Next() {
		var c Conversion
		var amount, rate, fee, convAmt string
		var createdAt int64
		if err := rows.Scan(&c.Id, &c.From, &c.To, &amount, &rate, &fee, &convAmt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		if c.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse conversion amount %q: %w", amount, err)
		}
		if c.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("failed to parse conversion rate %q: %w", rate, err)
		}
		if c.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("failed to parse conversion fee %q: %w", fee, err)
		}
		if c.Converted, err = decimal.NewFromString(convAmt); err != nil {
			return nil, fmt.Errorf("failed to parse converted amount %q: %w", convAmt, err)
		}
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversion history: %w", err)
	}
	return history, nil
}
