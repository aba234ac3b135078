package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

// UserKey carries the authenticated user through the request context. The
// middleware sets it after token validation; the notifier sets it per user
// when it runs outside a request.
const UserKey contextKey = "c2g.user"

var ErrNoUser = errors.New("user not found")

// CurrentId returns the id of the user stored in ctx, or ErrNoUser.
func CurrentId(ctx context.Context) (int, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return current.Id, nil
}

// CurrentUser returns the user stored in ctx, or ErrNoUser.
func CurrentUser(ctx context.Context) (User, error) {
	current, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("no user in context")
		return User{}, ErrNoUser
	}
	return current, nil
}

func WithUser(ctx context.Context, current User) context.Context {
	return context.WithValue(ctx, UserKey, current)
}
