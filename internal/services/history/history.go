// Package services содержит бизнес-логику списка "продолжить просмотр".
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// HistoryRepository определяет методы для работы с историей просмотра.
type HistoryRepository interface {
	// UpsertHistoryItem добавляет фильм или поднимает его наверх.
	UpsertHistoryItem(ctx context.Context, item models.HistoryItem) error
	// ListHistory возвращает историю, свежие записи первыми.
	ListHistory(ctx context.Context, userUID string) ([]*models.HistoryItem, error)
	// ClearHistory очищает историю.
	ClearHistory(ctx context.Context, userUID string) (int64, error)
}

// HistoryService реализует операции с историей просмотра.
type HistoryService struct {
	repo HistoryRepository
	log  *slog.Logger
}

// NewHistoryService создает новый экземпляр HistoryService.
func NewHistoryService(repo HistoryRepository, log *slog.Logger) *HistoryService {
	return &HistoryService{
		repo: repo,
		log:  log,
	}
}

// Record отмечает просмотр фильма. Повторный просмотр поднимает
// запись наверх, история хранит не больше десяти последних фильмов.
func (s *HistoryService) Record(ctx context.Context, userUID string, req models.DummyHistoryItem) error {
	item := models.HistoryItem{
		UserUID:    userUID,
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	}
	if err := s.repo.UpsertHistoryItem(ctx, item); err != nil {
		return err
	}
	s.log.Info("recorded watch",
		slog.String("user_uid", userUID), slog.Int64("movie_id", req.MovieID))
	return nil
}

// List возвращает историю просмотра пользователя.
func (s *HistoryService) List(ctx context.Context, userUID string) ([]*models.HistoryItem, error) {
	return s.repo.ListHistory(ctx, userUID)
}

// Clear очищает историю, возвращает число удаленных записей.
func (s *HistoryService) Clear(ctx context.Context, userUID string) (int64, error) {
	return s.repo.ClearHistory(ctx, userUID)
}
