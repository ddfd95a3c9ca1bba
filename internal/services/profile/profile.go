// Package services содержит бизнес-логику профилей просмотра.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// ErrProfileNotFound возвращается при попытке активировать чужой
// или несуществующий профиль.
var ErrProfileNotFound = errors.New("profile not found")

// maxProfiles максимальное число профилей на учетную запись.
const maxProfiles = 5

// ErrTooManyProfiles возвращается при превышении лимита профилей.
var ErrTooManyProfiles = errors.New("too many profiles")

// ProfileRepository определяет методы для работы с профилями в хранилище.
type ProfileRepository interface {
	// CreateProfile создает профиль, первый становится активным.
	CreateProfile(ctx context.Context, profile models.Profile) (int, error)
	// ListProfiles возвращает профили пользователя.
	ListProfiles(ctx context.Context, userUID string) ([]*models.Profile, error)
	// ActivateProfile делает профиль активным.
	ActivateProfile(ctx context.Context, userUID string, profileID int) (int64, error)
}

// ProfileService реализует операции с профилями просмотра.
type ProfileService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

// Create создает профиль просмотра и возвращает его ID.
func (s *ProfileService) Create(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
	existing, err := s.repo.ListProfiles(ctx, userUID)
	if err != nil {
		return 0, err
	}
	if len(existing) >= maxProfiles {
		return 0, ErrTooManyProfiles
	}

	id, err := s.repo.CreateProfile(ctx, models.Profile{
		UserUID: userUID,
		Name:    req.Name,
		IsKids:  req.IsKids,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created profile",
		slog.String("user_uid", userUID), slog.Int("profile_id", id))
	return id, nil
}

// List возвращает профили пользователя.
func (s *ProfileService) List(ctx context.Context, userUID string) ([]*models.Profile, error) {
	return s.repo.ListProfiles(ctx, userUID)
}

// Activate делает профиль активным, снимая флаг с остальных.
func (s *ProfileService) Activate(ctx context.Context, userUID string, profileID int) error {
	count, err := s.repo.ActivateProfile(ctx, userUID, profileID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrProfileNotFound
	}
	return nil
}
