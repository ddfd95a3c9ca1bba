// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/movieflix-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/password"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/models"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// RecordStore описывает методы хранилища записей доступа,
// нужные для переноса гостевых записей на пользователя.
type RecordStore interface {
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
	SetRaw(ctx context.Context, key string, raw []byte) error
	Delete(ctx context.Context, key string) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	store    RecordStore
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, store RecordStore, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		store:    store,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.mergeGuestRecords(ctx, uid)
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Гостевые записи доступа переносятся на пользователя.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role, uid string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", "", err
	}
	s.mergeGuestRecords(ctx, user.UID)
	return token, user.Role, user.UID, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе, роль и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UID:      claims.UserUID,
	}
	return user, claims.Role, true, nil
}

// mergeGuestRecords переносит записи доступа гостевого контекста
// на пользователя. Уже существующая запись пользователя выигрывает.
// Перенос делается на лучшее усилие: сбой не блокирует вход.
func (s *AuthService) mergeGuestRecords(ctx context.Context, userUID string) {
	keys := [][2]string{
		{records.TrialKey(records.GuestUID), records.TrialKey(userUID)},
		{records.SubscriptionKey(records.GuestUID), records.SubscriptionKey(userUID)},
		{records.SelectedPlanKey(records.GuestUID), records.SelectedPlanKey(userUID)},
	}
	for _, pair := range keys {
		guestKey, userKey := pair[0], pair[1]

		raw, found, err := s.store.GetRaw(ctx, guestKey)
		if err != nil || !found {
			continue
		}
		_, userHas, err := s.store.GetRaw(ctx, userKey)
		if err != nil {
			continue
		}
		if !userHas {
			if err := s.store.SetRaw(ctx, userKey, raw); err != nil {
				s.log.Warn("failed to merge guest record", slog.String("key", userKey), sl.Err(err))
				continue
			}
		}
		if err := s.store.Delete(ctx, guestKey); err != nil {
			s.log.Warn("failed to delete guest record", slog.String("key", guestKey), sl.Err(err))
		}
	}
}
