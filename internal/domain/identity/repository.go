package identity

import (
	"context"
	"time"
)

// ProfileFilter narrows profile listings for administrative views.
type ProfileFilter struct {
	Search   string // matches email or username
	Tier     string
	Status   string
	Page     int
	PageSize int
}

// ProfileRepository persists the profile mirror.
// GetByID returns (nil, nil) when no profile exists.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	// GetByIDForUpdate locks the profile row for the duration of the
	// surrounding transaction. The profile row is the serialization anchor
	// for all per-user ledger mutations.
	GetByIDForUpdate(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	UpdateEmail(ctx context.Context, id, email string) error
	List(ctx context.Context, filter ProfileFilter) ([]*Profile, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
