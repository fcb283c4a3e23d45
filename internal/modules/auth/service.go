package auth

import (
	"context"
	"errors"
	"strings"

	"cleanbook/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// RegisterOwner creates the organization and its first owner account in one
// transaction. The organization starts on the free plan.
func (s *Service) RegisterOwner(ctx context.Context, req RegisterOwnerRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org := &domain.Organization{
			Name: strings.TrimSpace(req.OrganizationName),
			Plan: domain.PlanFree,
		}
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		user = &domain.User{
			OrganizationID: org.ID,
			Email:          email,
			PasswordHash:   hash,
			Name:           req.Name,
			Phone:          req.Phone,
			Role:           domain.RoleOwner,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}

	return s.respond(user)
}

// RegisterStaff adds a staff account to the actor's organization. Only
// owners can do this.
func (s *Service) RegisterStaff(ctx context.Context, actor *domain.User, req RegisterStaffRequest) (*domain.User, error) {
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		return nil, ErrUnauthorized
	}

	email := normalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		OrganizationID: actor.OrganizationID,
		Email:          email,
		PasswordHash:   hash,
		Name:           req.Name,
		Phone:          req.Phone,
		Role:           domain.RoleStaff,
		CalendarID:     req.CalendarID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) respond(user *domain.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.OrganizationID, string(user.Role))
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
