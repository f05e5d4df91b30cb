package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatledger/internal/domain/contact"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

type ContactRequestRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewContactRequestRepository(db *gorm.DB, logger logger.Interface) contact.ContactRequestRepository {
	return &ContactRequestRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ContactRequestRepositoryImpl) Create(ctx context.Context, req *contact.ContactRequest) error {
	model := &models.ContactRequestModel{
		Name:      req.Name(),
		Email:     req.Email(),
		Subject:   req.Subject(),
		Message:   req.Message(),
		CreatedAt: req.CreatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create contact request", "error", err, "email", req.Email())
		return fmt.Errorf("failed to create contact request: %w", err)
	}

	return req.SetID(model.ID)
}

func (r *ContactRequestRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*contact.ContactRequest, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ContactRequestModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count contact requests", "error", err)
		return nil, 0, fmt.Errorf("failed to count contact requests: %w", err)
	}

	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var reqModels []*models.ContactRequestModel
	err := query.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("id DESC").
		Find(&reqModels).Error
	if err != nil {
		r.logger.Errorw("failed to list contact requests", "error", err)
		return nil, 0, fmt.Errorf("failed to list contact requests: %w", err)
	}

	reqs := make([]*contact.ContactRequest, 0, len(reqModels))
	for _, model := range reqModels {
		reqs = append(reqs, contact.ReconstructContactRequest(
			model.ID, model.Name, model.Email, model.Subject, model.Message, model.CreatedAt,
		))
	}
	return reqs, total, nil
}
