package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User, pinHash string) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, string, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User, pinHash string) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, email, pin_hash, currency, timezone) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := u.db.ExecContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Email,
		pinHash,
		user.Settings.Currency,
		user.Settings.Timezone,
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, email, currency, timezone FROM users WHERE id = ?`
	var user User
	err := u.db.QueryRowContext(ctx, query, id).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&user.Settings.Currency,
			&user.Settings.Timezone,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, email, currency, timezone FROM users WHERE uid = ?`
	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&user.Settings.Currency,
			&user.Settings.Timezone,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *RepoImpl) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	query := `SELECT id, uid, username, display_name, email, pin_hash, currency, timezone FROM users WHERE username = ?`
	var user User
	var pinHash string
	err := u.db.QueryRowContext(ctx, query, username).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&pinHash,
			&user.Settings.Currency,
			&user.Settings.Timezone,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with username %s not found", username)
		return User{}, "", ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, "", err
	}
	return user, pinHash, nil
}

func (u *RepoImpl) ListUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, email, currency, timezone FROM users ORDER BY id`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		err := rows.Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&user.Settings.Currency,
			&user.Settings.Timezone,
		)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *RepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = ?, email = ?, currency = ?, timezone = ? WHERE id = ?`
	result, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Email,
		user.Settings.Currency,
		user.Settings.Timezone,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return User{}, err
	}
	if rowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return u.GetUser(ctx, userId)
}
