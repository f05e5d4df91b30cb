package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatledger/internal/domain/billing"
	vo "chatledger/internal/domain/billing/valueobjects"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/biztime"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) billing.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *billing.Subscription) error {
	model := r.toModel(sub)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "user_id", sub.UserID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription created", "subscription_id", model.ID, "user_id", sub.UserID())
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "error", err, "subscription_id", id)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetActiveByUser(ctx context.Context, userID string) (*billing.Subscription, error) {
	return r.getActiveByUser(ctx, userID, false)
}

func (r *SubscriptionRepositoryImpl) GetActiveByUserForUpdate(ctx context.Context, userID string) (*billing.Subscription, error) {
	return r.getActiveByUser(ctx, userID, true)
}

func (r *SubscriptionRepositoryImpl) getActiveByUser(ctx context.Context, userID string, forUpdate bool) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err := tx.Where("user_id = ? AND status = ?", userID, vo.SubscriptionActive.String()).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get active subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *billing.Subscription) error {
	model := r.toModel(sub)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"tokens_used":   model.TokensUsed,
			"status":        model.Status,
			"cancelled_at":  model.CancelledAt,
			"cancel_reason": model.CancelReason,
			"admin_notes":   model.AdminNotes,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*billing.Subscription, error) {
	var subModels []*models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.toEntities(subModels)
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter billing.SubscriptionFilter) ([]*billing.Subscription, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SubscriptionModel{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.PlanName != "" {
		query = query.Where("plan_name = ?", filter.PlanName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
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

	var subModels []*models.SubscriptionModel
	err := query.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("id DESC").
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs, err := r.toEntities(subModels)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriptionRepositoryImpl) ListExpiredActive(ctx context.Context, limit int) ([]*billing.Subscription, error) {
	var subModels []*models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("status = ? AND expires_at < ?", vo.SubscriptionActive.String(), biztime.NowUTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list expired active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list expired active subscriptions: %w", err)
	}

	return r.toEntities(subModels)
}

func (r *SubscriptionRepositoryImpl) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND status = ?", userID, vo.SubscriptionActive.String()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active subscriptions", "error", err, "user_id", userID)
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.SubscriptionModel{}).
		Where("status = ?", vo.SubscriptionActive.String()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active subscriptions", "error", err)
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) SumPricePaid(ctx context.Context, activeOnly bool) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SubscriptionModel{})
	if activeOnly {
		query = query.Where("status = ?", vo.SubscriptionActive.String())
	}

	var sum int64
	err := query.Select("COALESCE(SUM(price_paid), 0)").Scan(&sum).Error
	if err != nil {
		r.logger.Errorw("failed to sum subscription revenue", "error", err)
		return 0, fmt.Errorf("failed to sum subscription revenue: %w", err)
	}
	return sum, nil
}

func (r *SubscriptionRepositoryImpl) toEntity(model *models.SubscriptionModel) (*billing.Subscription, error) {
	return billing.ReconstructSubscription(billing.SubscriptionReconstructParams{
		ID:               model.ID,
		UserID:           model.UserID,
		PlanID:           model.PlanID,
		PlanName:         model.PlanName,
		BillingCycle:     vo.BillingCycle(model.BillingCycle),
		PricePaid:        model.PricePaid,
		TokensTotal:      model.TokensTotal,
		TokensUsed:       model.TokensUsed,
		Status:           vo.SubscriptionStatus(model.Status),
		StartedAt:        model.StartedAt,
		ExpiresAt:        model.ExpiresAt,
		CancelledAt:      model.CancelledAt,
		CancelReason:     model.CancelReason,
		ActivatedByAdmin: model.ActivatedByAdmin,
		AdminNotes:       model.AdminNotes,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
}

func (r *SubscriptionRepositoryImpl) toModel(sub *billing.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:               sub.ID(),
		UserID:           sub.UserID(),
		PlanID:           sub.PlanID(),
		PlanName:         sub.PlanName(),
		BillingCycle:     sub.BillingCycle().String(),
		PricePaid:        sub.PricePaid(),
		TokensTotal:      sub.TokensTotal(),
		TokensUsed:       sub.TokensUsed(),
		Status:           sub.Status().String(),
		StartedAt:        sub.StartedAt(),
		ExpiresAt:        sub.ExpiresAt(),
		CancelledAt:      sub.CancelledAt(),
		CancelReason:     sub.CancelReason(),
		ActivatedByAdmin: sub.ActivatedByAdmin(),
		AdminNotes:       sub.AdminNotes(),
		CreatedAt:        sub.CreatedAt(),
		UpdatedAt:        sub.UpdatedAt(),
	}
}

func (r *SubscriptionRepositoryImpl) toEntities(subModels []*models.SubscriptionModel) ([]*billing.Subscription, error) {
	subs := make([]*billing.Subscription, 0, len(subModels))
	for _, model := range subModels {
		sub, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert subscription %d: %w", model.ID, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
