package repository

import (
	"context"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DB exposes the underlying handle for callers that need a transaction
// spanning more than one repository.
func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).First(&u, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) CalendarIDsForStaff(ctx context.Context, staffIDs []int64) (map[int64]string, error) {
	if len(staffIDs) == 0 {
		return map[int64]string{}, nil
	}
	var users []domain.User
	tx := r.db.WithContext(ctx).Where("id IN ? AND calendar_id <> ''", staffIDs).Find(&users)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make(map[int64]string, len(users))
	for _, u := range users {
		out[u.ID] = u.CalendarID
	}
	return out, nil
}
