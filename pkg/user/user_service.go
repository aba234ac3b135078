package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserDataInvalid    = errors.New("user data is invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User, pin string) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	VerifyPin(ctx context.Context, username, pin string) (User, error)
}

// Provider is the minimal read-only surface other packages depend on.
type Provider interface {
	GetCurrentUser(ctx context.Context) (User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (u *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *ServiceImpl) CreateUser(ctx context.Context, user User, pin string) (User, error) {
	if user.Username == "" || pin == "" {
		return User{}, ErrUserDataInvalid
	}
	if user.Uid == "" {
		user.Uid = uuid.New().String()
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash pin: %w", err)
	}
	userId, err := u.repo.CreateUser(ctx, user, string(pinHash))
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *ServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return u.repo.ListUsers(ctx)
}

func (u *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

// VerifyPin checks the user's PIN against the stored bcrypt hash and returns
// the matching user. Unknown usernames and wrong PINs are indistinguishable
// to the caller.
func (u *ServiceImpl) VerifyPin(ctx context.Context, username, pin string) (User, error) {
	user, pinHash, err := u.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	} else if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
