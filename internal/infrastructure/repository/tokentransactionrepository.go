package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatledger/internal/domain/ledger"
	"chatledger/internal/infrastructure/persistence/models"
	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/db"
	"chatledger/internal/shared/logger"
)

// TokenTransactionRepositoryImpl persists the append-only ledger. There is
// deliberately no update or delete path.
type TokenTransactionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTokenTransactionRepository(db *gorm.DB, logger logger.Interface) ledger.TokenTransactionRepository {
	return &TokenTransactionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *TokenTransactionRepositoryImpl) Append(ctx context.Context, entry *ledger.TokenTransaction) error {
	model := r.toModel(entry)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append ledger entry", "error", err, "user_id", entry.UserID())
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TokenTransactionRepositoryImpl) GetLatestByUser(ctx context.Context, userID string) (*ledger.TokenTransaction, error) {
	var model models.TokenTransactionModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("user_id = ?", userID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest ledger entry", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get latest ledger entry: %w", err)
	}

	return r.toEntity(&model)
}

func (r *TokenTransactionRepositoryImpl) ListByUser(ctx context.Context, filter ledger.TransactionFilter) ([]*ledger.TokenTransaction, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TokenTransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.Type != nil {
		query = query.Where("transaction_type = ?", filter.Type.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count ledger entries", "error", err, "user_id", filter.UserID)
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
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

	var entryModels []*models.TokenTransactionModel
	err := query.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("id DESC").
		Find(&entryModels).Error
	if err != nil {
		r.logger.Errorw("failed to list ledger entries", "error", err, "user_id", filter.UserID)
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries := make([]*ledger.TokenTransaction, 0, len(entryModels))
	for _, model := range entryModels {
		entry, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert ledger entry %d: %w", model.ID, err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (r *TokenTransactionRepositoryImpl) SumAmountByType(ctx context.Context, txType ledger.TransactionType) (int64, error) {
	var sum int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.TokenTransactionModel{}).
		Where("transaction_type = ?", txType.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		r.logger.Errorw("failed to sum ledger amounts", "error", err, "type", txType.String())
		return 0, fmt.Errorf("failed to sum ledger amounts: %w", err)
	}
	return sum, nil
}

// toEntity re-checks the row invariant on the way out; a corrupted chain
// fails loudly instead of feeding bad balances downstream.
func (r *TokenTransactionRepositoryImpl) toEntity(model *models.TokenTransactionModel) (*ledger.TokenTransaction, error) {
	return ledger.ReconstructTokenTransaction(ledger.TokenTransactionReconstructParams{
		ID:              model.ID,
		UserID:          model.UserID,
		Amount:          model.Amount,
		TransactionType: ledger.TransactionType(model.TransactionType),
		Reason:          model.Reason,
		BalanceBefore:   model.BalanceBefore,
		BalanceAfter:    model.BalanceAfter,
		AdminNotes:      model.AdminNotes,
		CreatedAt:       model.CreatedAt,
	})
}

func (r *TokenTransactionRepositoryImpl) toModel(entry *ledger.TokenTransaction) *models.TokenTransactionModel {
	return &models.TokenTransactionModel{
		ID:              entry.ID(),
		UserID:          entry.UserID(),
		Amount:          entry.Amount(),
		TransactionType: entry.TransactionType().String(),
		Reason:          entry.Reason(),
		BalanceBefore:   entry.BalanceBefore(),
		BalanceAfter:    entry.BalanceAfter(),
		AdminNotes:      entry.AdminNotes(),
		CreatedAt:       entry.CreatedAt(),
	}
}
