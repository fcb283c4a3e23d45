package repository

import (
	"context"
	"time"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) PublishedInRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.Shift, error) {
	var shifts []domain.Shift
	tx := r.db.WithContext(ctx).
		Where("store_id = ? AND published AND start_time <= ? AND end_time >= ?", storeID, to, from).
		Order("start_time").
		Find(&shifts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return shifts, nil
}

func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *ShiftRepository) SetPublished(ctx context.Context, shiftID int64, published bool) error {
	return r.db.WithContext(ctx).Model(&domain.Shift{}).Where("id = ?", shiftID).
		Update("published", published).Error
}
