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

type PaymentRequestRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRequestRepository(db *gorm.DB, logger logger.Interface) billing.PaymentRequestRepository {
	return &PaymentRequestRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PaymentRequestRepositoryImpl) Create(ctx context.Context, req *billing.PaymentRequest) error {
	model := r.toModel(req)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment request", "error", err, "user_id", req.UserID())
		return fmt.Errorf("failed to create payment request: %w", err)
	}

	if err := req.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("payment request created", "request_id", model.ID, "user_id", req.UserID())
	return nil
}

func (r *PaymentRequestRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.PaymentRequest, error) {
	return r.getByID(ctx, id, false)
}

func (r *PaymentRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*billing.PaymentRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *PaymentRequestRepositoryImpl) getByID(ctx context.Context, id uint, forUpdate bool) (*billing.PaymentRequest, error) {
	var model models.PaymentRequestModel
	tx := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment request", "error", err, "request_id", id)
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PaymentRequestRepositoryImpl) Update(ctx context.Context, req *billing.PaymentRequest) error {
	model := r.toModel(req)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PaymentRequestModel{}).
		Where("id = ?", req.ID()).
		Updates(map[string]interface{}{
			"status":                 model.Status,
			"transaction_reference":  model.TransactionReference,
			"payment_date":           model.PaymentDate,
			"payment_screenshot_url": model.PaymentScreenshotURL,
			"rejection_reason":       model.RejectionReason,
			"admin_confirmed_at":     model.AdminConfirmedAt,
			"admin_notes":            model.AdminNotes,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment request", "error", result.Error, "request_id", req.ID())
		return fmt.Errorf("failed to update payment request: %w", result.Error)
	}

	return nil
}

func (r *PaymentRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*billing.PaymentRequest, error) {
	var reqModels []*models.PaymentRequestModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&reqModels).Error
	if err != nil {
		r.logger.Errorw("failed to list payment requests", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}

	return r.toEntities(reqModels)
}

func (r *PaymentRequestRepositoryImpl) List(ctx context.Context, filter billing.PaymentRequestFilter) ([]*billing.PaymentRequest, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PaymentRequestModel{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count payment requests", "error", err)
		return nil, 0, fmt.Errorf("failed to count payment requests: %w", err)
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

	var reqModels []*models.PaymentRequestModel
	err := query.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("id DESC").
		Find(&reqModels).Error
	if err != nil {
		r.logger.Errorw("failed to list payment requests", "error", err)
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}

	reqs, err := r.toEntities(reqModels)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *PaymentRequestRepositoryImpl) ListExpiredPending(ctx context.Context, limit int) ([]*billing.PaymentRequest, error) {
	var reqModels []*models.PaymentRequestModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("status = ? AND expires_at < ?", vo.PaymentPending.String(), biztime.NowUTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&reqModels).Error
	if err != nil {
		r.logger.Errorw("failed to list expired pending requests", "error", err)
		return nil, fmt.Errorf("failed to list expired pending requests: %w", err)
	}

	return r.toEntities(reqModels)
}

func (r *PaymentRequestRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.PaymentRequestModel{}).
		Where("status = ?", vo.PaymentPending.String()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count pending payment requests", "error", err)
		return 0, fmt.Errorf("failed to count pending payment requests: %w", err)
	}
	return count, nil
}

func (r *PaymentRequestRepositoryImpl) toEntity(model *models.PaymentRequestModel) (*billing.PaymentRequest, error) {
	return billing.ReconstructPaymentRequest(billing.PaymentRequestReconstructParams{
		ID:                   model.ID,
		UserID:               model.UserID,
		PlanID:               model.PlanID,
		PlanName:             model.PlanName,
		BillingCycle:         vo.BillingCycle(model.BillingCycle),
		Amount:               model.Amount,
		Currency:             model.Currency,
		Status:               vo.PaymentStatus(model.Status),
		TransactionReference: model.TransactionReference,
		PaymentDate:          model.PaymentDate,
		PaymentScreenshotURL: model.PaymentScreenshotURL,
		RejectionReason:      model.RejectionReason,
		AdminConfirmedAt:     model.AdminConfirmedAt,
		AdminNotes:           model.AdminNotes,
		ExpiresAt:            model.ExpiresAt,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	})
}

func (r *PaymentRequestRepositoryImpl) toModel(req *billing.PaymentRequest) *models.PaymentRequestModel {
	return &models.PaymentRequestModel{
		ID:                   req.ID(),
		UserID:               req.UserID(),
		PlanID:               req.PlanID(),
		PlanName:             req.PlanName(),
		BillingCycle:         req.BillingCycle().String(),
		Amount:               req.Amount(),
		Currency:             req.Currency(),
		Status:               req.Status().String(),
		TransactionReference: req.TransactionReference(),
		PaymentDate:          req.PaymentDate(),
		PaymentScreenshotURL: req.PaymentScreenshotURL(),
		RejectionReason:      req.RejectionReason(),
		AdminConfirmedAt:     req.AdminConfirmedAt(),
		AdminNotes:           req.AdminNotes(),
		ExpiresAt:            req.ExpiresAt(),
		CreatedAt:            req.CreatedAt(),
		UpdatedAt:            req.UpdatedAt(),
	}
}

func (r *PaymentRequestRepositoryImpl) toEntities(reqModels []*models.PaymentRequestModel) ([]*billing.PaymentRequest, error) {
	reqs := make([]*billing.PaymentRequest, 0, len(reqModels))
	for _, model := range reqModels {
		req, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert payment request %d: %w", model.ID, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
