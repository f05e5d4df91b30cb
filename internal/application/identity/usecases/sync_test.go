package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatledger/internal/domain/identity"
	apperrors "chatledger/internal/shared/errors"
	"chatledger/internal/shared/logger"
)

type memProfileRepo struct {
	profiles     map[string]*identity.Profile
	createCalls  int
	updateCalls  int
	emailUpdates int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*identity.Profile)}
}

func (r *memProfileRepo) Create(_ context.Context, p *identity.Profile) error {
	r.createCalls++
	if _, ok := r.profiles[p.ID()]; ok {
		return errors.New("Duplicate entry 'u-1' for key 'profiles.PRIMARY'")
	}
	r.profiles[p.ID()] = p
	return nil
}

func (r *memProfileRepo) GetByID(_ context.Context, id string) (*identity.Profile, error) {
	return r.profiles[id], nil
}

func (r *memProfileRepo) GetByIDForUpdate(ctx context.Context, id string) (*identity.Profile, error) {
	return r.GetByID(ctx, id)
}

func (r *memProfileRepo) Update(_ context.Context, p *identity.Profile) error {
	r.updateCalls++
	r.profiles[p.ID()] = p
	return nil
}

func (r *memProfileRepo) UpdateEmail(_ context.Context, id, email string) error {
	r.emailUpdates++
	p := r.profiles[id]
	if p == nil {
		return errors.New("profile not found")
	}
	_, err := p.SyncEmail(email)
	return err
}

func (r *memProfileRepo) List(_ context.Context, _ identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	var out []*identity.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memProfileRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.profiles)), nil
}

func (r *memProfileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

func createdEvent(id, email string) identity.UserCreatedEvent {
	return identity.UserCreatedEvent{ID: id, Email: email}
}

func TestSyncUserCreated_CreatesProfile(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewSyncUserCreatedUseCase(repo, logger.NewLogger())

	profile, err := uc.Execute(context.Background(), SyncUserCreatedCommand{
		Event: identity.UserCreatedEvent{
			ID:       "u-1",
			Email:    "alice@example.com",
			Metadata: identity.UserMetadata{Username: "alice", FullName: "Alice A"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID())
	assert.Equal(t, "alice", profile.Username())
	assert.Equal(t, "free", profile.SubscriptionTier())
	assert.Equal(t, 1, repo.createCalls)
}

func TestSyncUserCreated_RedeliveryRefreshesEmailOnly(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewSyncUserCreatedUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, SyncUserCreatedCommand{Event: identity.UserCreatedEvent{
		ID:       "u-1",
		Email:    "alice@example.com",
		Metadata: identity.UserMetadata{Username: "alice"},
	}})
	require.NoError(t, err)

	// Redelivery with a new email but different metadata: only the email moves.
	profile, err := uc.Execute(ctx, SyncUserCreatedCommand{Event: identity.UserCreatedEvent{
		ID:       "u-1",
		Email:    "alice@new.example.com",
		Metadata: identity.UserMetadata{Username: "impostor"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", profile.Email())
	assert.Equal(t, "alice", profile.Username())
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, repo.emailUpdates)

	// Exact redelivery is a complete no-op.
	_, err = uc.Execute(ctx, SyncUserCreatedCommand{Event: createdEvent("u-1", "alice@new.example.com")})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.emailUpdates)
}

func TestSyncUserCreated_InvalidEvent(t *testing.T) {
	uc := NewSyncUserCreatedUseCase(newMemProfileRepo(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), SyncUserCreatedCommand{Event: createdEvent("", "a@b.com")})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), SyncUserCreatedCommand{Event: createdEvent("u-1", "not-an-email")})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSyncUserEmailChanged(t *testing.T) {
	repo := newMemProfileRepo()
	ctx := context.Background()

	created := NewSyncUserCreatedUseCase(repo, logger.NewLogger())
	_, err := created.Execute(ctx, SyncUserCreatedCommand{Event: createdEvent("u-1", "alice@example.com")})
	require.NoError(t, err)

	uc := NewSyncUserEmailChangedUseCase(repo, logger.NewLogger())

	err = uc.Execute(ctx, SyncUserEmailChangedCommand{Event: identity.UserEmailChangedEvent{
		ID:       "u-1",
		OldEmail: "alice@example.com",
		NewEmail: "alice@new.example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", repo.profiles["u-1"].Email())
	assert.Equal(t, 1, repo.emailUpdates)

	// Equal-email redelivery is a no-op.
	err = uc.Execute(ctx, SyncUserEmailChangedCommand{Event: identity.UserEmailChangedEvent{
		ID:       "u-1",
		NewEmail: "alice@new.example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.emailUpdates)

	// Unknown profile is acknowledged, not an error.
	err = uc.Execute(ctx, SyncUserEmailChangedCommand{Event: identity.UserEmailChangedEvent{
		ID:       "u-missing",
		NewEmail: "x@example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.emailUpdates)
}

func TestEnsureProfile(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewEnsureProfileUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	profile, created, err := uc.Execute(ctx, EnsureProfileCommand{UserID: "u-1", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "u-1", profile.ID())

	again, created, err := uc.Execute(ctx, EnsureProfileCommand{UserID: "u-1", Email: "other@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	// Existing row is untouched, including its email.
	assert.Equal(t, "alice@example.com", again.Email())
}

func TestBanUser(t *testing.T) {
	repo := newMemProfileRepo()
	ctx := context.Background()

	created := NewSyncUserCreatedUseCase(repo, logger.NewLogger())
	_, err := created.Execute(ctx, SyncUserCreatedCommand{Event: createdEvent("u-1", "alice@example.com")})
	require.NoError(t, err)

	uc := NewBanUserUseCase(repo, logger.NewLogger())

	profile, err := uc.Execute(ctx, BanUserCommand{UserID: "u-1", Ban: true, Reason: "abuse"})
	require.NoError(t, err)
	assert.True(t, profile.IsBanned())
	require.NotNil(t, profile.BannedAt())
	firstBannedAt := *profile.BannedAt()

	// Repeat ban keeps the original timestamp.
	profile, err = uc.Execute(ctx, BanUserCommand{UserID: "u-1", Ban: true, Reason: "abuse again"})
	require.NoError(t, err)
	assert.Equal(t, firstBannedAt, *profile.BannedAt())

	profile, err = uc.Execute(ctx, BanUserCommand{UserID: "u-1", Ban: false})
	require.NoError(t, err)
	assert.False(t, profile.IsBanned())
	assert.Nil(t, profile.BanReason())

	_, err = uc.Execute(ctx, BanUserCommand{UserID: "u-1", Ban: true})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(ctx, BanUserCommand{UserID: "u-missing", Ban: true, Reason: "x"})
	assert.True(t, apperrors.IsNotFoundError(err))
}
