package repository

import (
	"context"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository using the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, number string) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDomain(&m), nil
}

// GetForUpdate implements repository.AccountRepository.
func (r *accountRepository) GetForUpdate(ctx context.Context, number string) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("number = ?", number).
		First(&m).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDomain(&m), nil
}

// GetByClientID implements repository.AccountRepository.
func (r *accountRepository) GetByClientID(ctx context.Context, clientID uint) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModelToDomain(&m), nil
}

// ListByStatus implements repository.AccountRepository.
func (r *accountRepository) ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	var ms []Account
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("id").
		Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*account.Account, 0, len(ms))
	for i := range ms {
		result = append(result, mapAccountModelToDomain(&ms[i]))
	}
	return result, nil
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := mapAccountDomainToModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

// Update implements repository.AccountRepository.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"client_id":        a.ClientID,
			"balance":          a.Balance,
			"withdrawal_limit": a.WithdrawalLimit,
			"closed_on":        a.ClosedOn,
			"status":           string(a.Status),
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.AccountRepository.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Account{}, id)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
