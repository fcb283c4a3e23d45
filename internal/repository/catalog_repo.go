package repository

import (
	"context"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ServicesByStore(ctx context.Context, storeID int64) ([]domain.Service, error) {
	var services []domain.Service
	tx := r.db.WithContext(ctx).
		Preload("Options").
		Where("store_id = ? AND active", storeID).
		Order("id").
		Find(&services)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return services, nil
}

func (r *CatalogRepository) ServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}
	var services []domain.Service
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return services, nil
}

func (r *CatalogRepository) OptionsByStore(ctx context.Context, storeID int64) ([]domain.ServiceOption, error) {
	var options []domain.ServiceOption
	tx := r.db.WithContext(ctx).
		Joins("JOIN services ON services.id = service_options.service_id").
		Where("services.store_id = ?", storeID).
		Find(&options)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return options, nil
}

func (r *CatalogRepository) OptionsByIDs(ctx context.Context, ids []int64) ([]domain.ServiceOption, error) {
	if len(ids) == 0 {
		return []domain.ServiceOption{}, nil
	}
	var options []domain.ServiceOption
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&options)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return options, nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, svc *domain.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *CatalogRepository) CreateOption(ctx context.Context, opt *domain.ServiceOption) error {
	return r.db.WithContext(ctx).Create(opt).Error
}
