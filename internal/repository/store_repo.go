package repository

import (
	"context"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	var store domain.Store
	tx := r.db.WithContext(ctx).Where("slug = ? AND deleted_at IS NULL", slug).First(&store)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &store, nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	var store domain.Store
	tx := r.db.WithContext(ctx).First(&store, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &store, nil
}

func (r *StoreRepository) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	tx := r.db.WithContext(ctx).First(&org, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &org, nil
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// UpdateBusinessHours writes the top-level schedule blob. Legacy schedules
// nested in settings are left alone; the resolver prefers this field.
func (r *StoreRepository) UpdateBusinessHours(ctx context.Context, storeID int64, raw []byte) error {
	return r.db.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", storeID).
		Update("business_hours", raw).Error
}

func (r *StoreRepository) UpdateCapacitySettings(ctx context.Context, storeID int64, maxCapacity int, mode domain.AvailabilityMode) error {
	return r.db.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", storeID).
		Updates(map[string]any{
			"max_capacity":      maxCapacity,
			"availability_mode": mode,
		}).Error
}
