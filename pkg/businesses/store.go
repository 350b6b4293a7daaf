package businesses

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrStateConflict reports a conditional state update that lost: the
	// record was not in the expected prior state.
	ErrStateConflict = errors.New("state conflict")
)

// BusinessStore is the keyed persistence surface for businesses.
type BusinessStore interface {
	GetByName(ctx context.Context, name string) (Business, error)
	GetByPublicID(ctx context.Context, publicID string) (Business, error)
	Put(ctx context.Context, b Business) error
	Update(ctx context.Context, b Business) error
	// UpdateState is a compare-and-swap on the lifecycle state so that
	// concurrent reviews of the same business cannot both win.
	UpdateState(ctx context.Context, name string, expected, next State) error
	Scan(ctx context.Context) ([]Business, error)
}

// UserStore persists platform-side user records.
type UserStore interface {
	Get(ctx context.Context, email string) (User, error)
	Put(ctx context.Context, u User) error
}

// ProfileStore persists profile grants keyed by (email, business, role).
type ProfileStore interface {
	Get(ctx context.Context, email, business, role string) (Profile, error)
	Put(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
}
