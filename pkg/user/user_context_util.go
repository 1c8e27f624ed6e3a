package user

import (
	"context"
	"errors"
)

type contextKey struct{}

var userKey contextKey

// ErrNoUser indicates that no authenticated user is attached to the context.
var ErrNoUser = errors.New("no user in context")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user attached to the context.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(userKey).(User)
	if !ok {
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId returns the ID of the authenticated user attached to the context.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}
