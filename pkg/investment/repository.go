package investment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrHoldingNotFound = errors.New("holding not found")

type Repository interface {
	CreateHolding(ctx context.Context, userId int, holding Holding) (Holding, error)
	GetHoldings(ctx context.Context, userId int) ([]Holding, error)
	DeleteHolding(ctx context.Context, userId, holdingId int) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateHolding(ctx context.Context, userId int, holding Holding) (Holding, error) {
	query := "INSERT INTO investment_holding (user_id, symbol, name, asset_type, quantity, buy_price) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, userId, holding.Symbol, holding.Name, string(holding.Type),
		holding.Quantity.String(), holding.BuyPrice.String())
	if err != nil {
		log.Errorf("Error creating holding for user %d: %v", userId, err)
		return Holding{}, fmt.Errorf("failed to create holding: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Holding{}, fmt.Errorf("failed to read holding id: %w", err)
	}
	holding.Id = int(id)
	return holding, nil
}

func (r *RepositoryImpl) GetHoldings(ctx context.Context, userId int) ([]Holding, error) {
	query := "SELECT id, symbol, name, asset_type, quantity, buy_price FROM investment_holding WHERE user_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		log.Errorf("Error listing holdings for user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]Holding, 0)
	for rows.Next() {
		var (
			holding            Holding
			assetType          string
			quantity, buyPrice string
		)
		if err := rows.Scan(&holding.Id, &holding.Symbol, &holding.Name, &assetType, &quantity, &buyPrice); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holding.Type = AssetType(assetType)
		if holding.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("failed to parse holding quantity %q: %w", quantity, err)
		}
		if holding.BuyPrice, err = decimal.NewFromString(buyPrice); err != nil {
			return nil, fmt.Errorf("failed to parse holding buy price %q: %w", buyPrice, err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}
	return holdings, nil
}

func (r *RepositoryImpl) DeleteHolding(ctx context.Context, userId, holdingId int) error {
	query := "DELETE FROM investment_holding WHERE user_id = ? AND id = ?"
	result, err := r.db.ExecContext(ctx, query, userId, holdingId)
	if err != nil {
		log.Errorf("Error deleting holding %d: %v", holdingId, err)
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrHoldingNotFound
	}
	return nil
}
