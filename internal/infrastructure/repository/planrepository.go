package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"chatledger/internal/domain/billing"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) billing.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *billing.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "slug", plan.Slug())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created", "plan_id", model.ID, "slug", plan.Slug())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*billing.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by slug", "error", err, "slug", slug)
		return nil, fmt.Errorf("failed to get plan by slug: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *billing.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PlanModel{}).
		Where("id = ?", plan.ID()).
		Updates(map[string]interface{}{
			"name":                 model.Name,
			"monthly_price":        model.MonthlyPrice,
			"yearly_price":         model.YearlyPrice,
			"tokens_total":         model.TokensTotal,
			"tokens_monthly_limit": model.TokensMonthlyLimit,
			"features":             model.Features,
			"sort_order":           model.SortOrder,
			"is_active":            model.IsActive,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	return nil
}

func (r *PlanRepositoryImpl) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	var planModels []*models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("is_active = ?", true).
		Order("sort_order ASC, created_at DESC").
		Find(&planModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active plans", "error", err)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	plans := make([]*billing.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert plan %d: %w", model.ID, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.PlanModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check plan slug existence", "error", err, "slug", slug)
		return false, fmt.Errorf("failed to check plan slug existence: %w", err)
	}
	return count > 0, nil
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*billing.Plan, error) {
	var features []string
	if model.Features != nil {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			r.logger.Errorw("failed to unmarshal plan features", "error", err, "plan_id", model.ID)
			return nil, fmt.Errorf("failed to unmarshal plan features: %w", err)
		}
	}

	return billing.ReconstructPlan(billing.PlanReconstructParams{
		ID:                 model.ID,
		Slug:               model.Slug,
		Name:               model.Name,
		MonthlyPrice:       model.MonthlyPrice,
		YearlyPrice:        model.YearlyPrice,
		TokensTotal:        model.TokensTotal,
		TokensMonthlyLimit: model.TokensMonthlyLimit,
		Features:           features,
		SortOrder:          model.SortOrder,
		IsActive:           model.IsActive,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
}

func (r *PlanRepositoryImpl) toModel(plan *billing.Plan) (*models.PlanModel, error) {
	featuresJSON, err := json.Marshal(plan.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan features: %w", err)
	}

	return &models.PlanModel{
		ID:                 plan.ID(),
		Slug:               plan.Slug(),
		Name:               plan.Name(),
		MonthlyPrice:       plan.MonthlyPrice(),
		YearlyPrice:        plan.YearlyPrice(),
		TokensTotal:        plan.TokensTotal(),
		TokensMonthlyLimit: plan.TokensMonthlyLimit(),
		Features:           featuresJSON,
		SortOrder:          plan.SortOrder(),
		IsActive:           plan.IsActive(),
		CreatedAt:          plan.CreatedAt(),
		UpdatedAt:          plan.UpdatedAt(),
	}, nil
}
