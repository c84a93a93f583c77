package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/db/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Repository loads login rows for credential checks.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.Login, error)
}

type repository struct {
	uow *db.UnitOfWork
}

// NewRepository builds a login repository over the unit of work.
func NewRepository(uow *db.UnitOfWork) Repository {
	return &repository{uow: uow}
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*models.Login, error) {
	var login models.Login
	err := r.uow.Conn(ctx).
		Where("username = ? AND is_active = ? AND is_deleted = ?", username, true, false).
		First(&login).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &login, nil
}

// Service validates credentials against the login table.
type Service interface {
	// Validate returns the identity for valid credentials, nil for bad
	// ones. Inactive and soft-deleted logins never match.
	Validate(ctx context.Context, username, password string) (*AuthUser, error)
}

type service struct {
	repo Repository
}

// NewService builds an auth service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Validate(ctx context.Context, username, password string) (*AuthUser, error) {
	if username == "" || password == "" {
		return nil, nil
	}

	login, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if login == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(login.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return &AuthUser{
		ID:       login.ID,
		Username: login.Username,
		Role:     login.Role,
	}, nil
}
