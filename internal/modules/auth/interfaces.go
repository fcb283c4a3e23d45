package auth

import (
	"context"

	"cleanbook/internal/domain"

	"gorm.io/gorm"
)

type UserRepositoryInterface interface {
	DB() *gorm.DB
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type jwtService interface {
	GenerateToken(userID, organizationID int64, role string) (string, error)
}
