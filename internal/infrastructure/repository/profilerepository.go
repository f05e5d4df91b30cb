package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatledger/internal/domain/identity"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/biztime"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewProfileRepository(db *gorm.DB, logger logger.Interface) identity.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *identity.Profile) error {
	model := r.toModel(profile)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create profile", "error", err, "user_id", profile.ID())
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Infow("profile created", "user_id", profile.ID())
	return nil
}

func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, id string) (*identity.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get profile", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ProfileRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*identity.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to lock profile", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *identity.Profile) error {
	model := r.toModel(profile)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ProfileModel{}).
		Where("id = ?", profile.ID()).
		Updates(map[string]interface{}{
			"email":               model.Email,
			"username":            model.Username,
			"full_name":           model.FullName,
			"avatar_url":          model.AvatarURL,
			"subscription_tier":   model.SubscriptionTier,
			"subscription_status": model.SubscriptionStatus,
			"tokens_total":        model.TokensTotal,
			"tokens_used":         model.TokensUsed,
			"bonus_tokens":        model.BonusTokens,
			"is_banned":           model.IsBanned,
			"banned_at":           model.BannedAt,
			"ban_reason":          model.BanReason,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update profile", "error", result.Error, "user_id", profile.ID())
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}

	return nil
}

func (r *ProfileRepositoryImpl) UpdateEmail(ctx context.Context, id, email string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ProfileModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email":      email,
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update profile email", "error", result.Error, "user_id", id)
		return fmt.Errorf("failed to update profile email: %w", result.Error)
	}

	return nil
}

func (r *ProfileRepositoryImpl) List(ctx context.Context, filter identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ProfileModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR username LIKE ?", like, like)
	}
	if filter.Tier != "" {
		query = query.Where("subscription_tier = ?", filter.Tier)
	}
	if filter.Status != "" {
		query = query.Where("subscription_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count profiles", "error", err)
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var profileModels []*models.ProfileModel
	err := query.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&profileModels).Error
	if err != nil {
		r.logger.Errorw("failed to list profiles", "error", err)
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*identity.Profile, 0, len(profileModels))
	for _, model := range profileModels {
		profile, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert profile %s: %w", model.ID, err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, nil
}

func (r *ProfileRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.ProfileModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count recent profiles", "error", err)
		return 0, fmt.Errorf("failed to count recent profiles: %w", err)
	}
	return count, nil
}

func (r *ProfileRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ProfileModel{}).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count profiles", "error", err)
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

func (r *ProfileRepositoryImpl) toEntity(model *models.ProfileModel) (*identity.Profile, error) {
	return identity.ReconstructProfile(identity.ProfileReconstructParams{
		ID:                 model.ID,
		Email:              model.Email,
		Username:           model.Username,
		FullName:           model.FullName,
		AvatarURL:          model.AvatarURL,
		SubscriptionTier:   model.SubscriptionTier,
		SubscriptionStatus: model.SubscriptionStatus,
		TokensTotal:        model.TokensTotal,
		TokensUsed:         model.TokensUsed,
		BonusTokens:        model.BonusTokens,
		IsBanned:           model.IsBanned,
		BannedAt:           model.BannedAt,
		BanReason:          model.BanReason,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
}

func (r *ProfileRepositoryImpl) toModel(profile *identity.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:                 profile.ID(),
		Email:              profile.Email(),
		Username:           profile.Username(),
		FullName:           profile.FullName(),
		AvatarURL:          profile.AvatarURL(),
		SubscriptionTier:   profile.SubscriptionTier(),
		SubscriptionStatus: profile.SubscriptionStatus(),
		TokensTotal:        profile.TokensTotal(),
		TokensUsed:         profile.TokensUsed(),
		BonusTokens:        profile.BonusTokens(),
		IsBanned:           profile.IsBanned(),
		BannedAt:           profile.BannedAt(),
		BanReason:          profile.BanReason(),
		CreatedAt:          profile.CreatedAt(),
		UpdatedAt:          profile.UpdatedAt(),
	}
}
