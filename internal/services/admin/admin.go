// Package services содержит административные операции над пользователями.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// ErrUserNotFound возвращается, если пользователь не существует.
var ErrUserNotFound = errors.New("user not found")

// UserRepository определяет административные методы работы с пользователями.
type UserRepository interface {
	// ListUsers возвращает пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserRole изменяет роль пользователя.
	UpdateUserRole(ctx context.Context, userUID, role string) (int64, error)
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, userUID string) (int64, error)
}

// AdminService реализует операции панели администратора.
type AdminService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo UserRepository, log *slog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log,
	}
}

// ListUsers возвращает пользователей с пагинацией.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// UpdateRole изменяет роль пользователя.
func (s *AdminService) UpdateRole(ctx context.Context, userUID, role string) error {
	count, err := s.repo.UpdateUserRole(ctx, userUID, role)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	s.log.Info("updated user role",
		slog.String("user_uid", userUID), slog.String("role", role))
	return nil
}

// RemoveUser удаляет пользователя вместе с его данными.
func (s *AdminService) RemoveUser(ctx context.Context, userUID string) error {
	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	s.log.Info("removed user", slog.String("user_uid", userUID))
	return nil
}
