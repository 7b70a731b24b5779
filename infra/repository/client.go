package repository

import (
	"context"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/amirasaad/bankoffice/pkg/repository"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository using the provided *gorm.DB.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

// Get implements repository.ClientRepository.
func (r *clientRepository) Get(ctx context.Context, id uint) (*client.Client, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByDni implements repository.ClientRepository.
func (r *clientRepository) GetByDni(ctx context.Context, dni string) (*client.Client, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("dni = ?", dni))
}

// ExistsByDni implements repository.ClientRepository.
func (r *clientRepository) ExistsByDni(ctx context.Context, dni string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Client{}).Where("dni = ?", dni).Count(&count).Error
	if err != nil {
		return false, MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

// ListByStatus implements repository.ClientRepository.
func (r *clientRepository) ListByStatus(ctx context.Context, status client.Status) ([]*client.Client, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)))
}

// ListAdherents implements repository.ClientRepository.
func (r *clientRepository) ListAdherents(ctx context.Context, mainClientID uint) ([]*client.Client, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("main_client_id = ?", mainClientID))
}

// GetAdherent implements repository.ClientRepository.
func (r *clientRepository) GetAdherent(ctx context.Context, mainClientID uint, dni string) (*client.Client, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("main_client_id = ? AND dni = ?", mainClientID, dni))
}

// Create implements repository.ClientRepository.
func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	m := mapClientDomainToModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return nil
}

// Update implements repository.ClientRepository.
func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	res := r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":           c.Name,
			"email":          c.Email,
			"password_hash":  c.PasswordHash,
			"address":        c.Address,
			"status":         string(c.Status),
			"main_client_id": c.MainClientID,
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.ClientRepository.
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Client{}, id)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepository) first(ctx context.Context, q *gorm.DB) (*client.Client, error) {
	var m Client
	if err := q.First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	c := mapClientModelToDomain(&m)
	if err := r.attachAccounts(ctx, []*client.Client{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) find(ctx context.Context, q *gorm.DB) ([]*client.Client, error) {
	var ms []Client
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*client.Client, 0, len(ms))
	for i := range ms {
		result = append(result, mapClientModelToDomain(&ms[i]))
	}
	if err := r.attachAccounts(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// attachAccounts loads the accounts of clients in one query.
func (r *clientRepository) attachAccounts(ctx context.Context, clients []*client.Client) error {
	if len(clients) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(clients))
	byID := make(map[uint]*client.Client, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}
	var accts []Account
	if err := r.db.WithContext(ctx).Where("client_id IN ?", ids).Find(&accts).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	for i := range accts {
		if accts[i].ClientID == nil {
			continue
		}
		if c, ok := byID[*accts[i].ClientID]; ok {
			c.Account = mapAccountModelToDomain(&accts[i])
		}
	}
	return nil
}
