package usecases

import (
	"context"
	"fmt"

	"chatledger/internal/domain/identity"
	"chatledger/internal/shared/logger"
)

// ListProfilesCommand represents the input for the administrative user
// listing.
type ListProfilesCommand struct {
	Search   string
	Tier     string
	Status   string
	Page     int
	PageSize int
}

// ListProfilesUseCase lists profile mirrors for administrators.
type ListProfilesUseCase struct {
	profileRepo identity.ProfileRepository
	logger      logger.Interface
}

// NewListProfilesUseCase creates a new ListProfilesUseCase instance.
func NewListProfilesUseCase(profileRepo identity.ProfileRepository, logger logger.Interface) *ListProfilesUseCase {
	return &ListProfilesUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Execute lists profiles matching the filter.
func (uc *ListProfilesUseCase) Execute(ctx context.Context, cmd ListProfilesCommand) ([]*identity.Profile, int64, error) {
	profiles, total, err := uc.profileRepo.List(ctx, identity.ProfileFilter{
		Search:   cmd.Search,
		Tier:     cmd.Tier,
		Status:   cmd.Status,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}
