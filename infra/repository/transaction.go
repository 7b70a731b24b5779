package repository

import (
	"context"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository using the provided *gorm.DB.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	m := mapTransactionDomainToModel(tx)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	tx.ID = m.ID
	return nil
}

// Get implements repository.TransactionRepository.
func (r *transactionRepository) Get(ctx context.Context, accountID, id uint) (*account.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&m).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionModelToDomain(&m), nil
}

// List implements repository.TransactionRepository. Filtering runs in SQL.
func (r *transactionRepository) List(
	ctx context.Context,
	accountID uint,
	filter repository.TransactionFilter,
) ([]*account.Transaction, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	start, end := filter.Range()
	if !start.IsZero() {
		q = q.Where("executed_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("executed_at < ?", end)
	}

	var ms []Transaction
	if err := q.Order("executed_at, id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*account.Transaction, 0, len(ms))
	for i := range ms {
		result = append(result, mapTransactionModelToDomain(&ms[i]))
	}
	return result, nil
}

// Update implements repository.TransactionRepository.
func (r *transactionRepository) Update(ctx context.Context, tx *account.Transaction) error {
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]any{
			"type":        string(tx.Type),
			"direction":   string(tx.Direction),
			"amount":      tx.Amount,
			"executed_at": tx.ExecutedAt,
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.TransactionRepository.
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Transaction{}, id)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByAccount implements repository.TransactionRepository.
func (r *transactionRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&Transaction{}).Error
	return MapGormErrorToDomain(err)
}
