package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// storageKey is the key the payment list has always lived under.
const storageKey = "scheduledPayments"

// Repository persists the full payment list as a single blob. Load reports
// found=false when the user has never stored anything, so callers can tell
// an empty store apart from a corrupt one.
type Repository interface {
	Load(ctx context.Context, userId int) (data []byte, found bool, err error)
	Save(ctx context.Context, userId int, data []byte) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Load(ctx context.Context, userId int) ([]byte, bool, error) {
	query := "SELECT value FROM blob_store WHERE user_id = ? AND key = ?"
	var data []byte
	err := r.db.QueryRowContext(ctx, query, userId, storageKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Errorf("Error loading scheduled payments for user %d: %v", userId, err)
		return nil, false, fmt.Errorf("failed to load scheduled payments: %w", err)
	}
	return data, true, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, userId int, data []byte) error {
	query := `INSERT INTO blob_store (user_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, userId, storageKey, data, time.Now().Unix())
	if err != nil {
		log.Errorf("Error saving scheduled payments for user %d: %v", userId, err)
		return fmt.Errorf("failed to save scheduled payments: %w", err)
	}
	return nil
}
