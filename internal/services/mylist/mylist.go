// Package services содержит бизнес-логику списка "моё".
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// WatchlistRepository определяет методы для работы со списком в хранилище.
type WatchlistRepository interface {
	// AddWatchlistItem добавляет фильм, повтор игнорируется.
	AddWatchlistItem(ctx context.Context, item models.WatchlistItem) (int64, error)
	// ListWatchlist возвращает список пользователя, свежие первыми.
	ListWatchlist(ctx context.Context, userUID string) ([]*models.WatchlistItem, error)
	// RemoveWatchlistItem удаляет фильм из списка.
	RemoveWatchlistItem(ctx context.Context, userUID string, movieID int64) (int64, error)
	// ClearWatchlist очищает список.
	ClearWatchlist(ctx context.Context, userUID string) (int64, error)
}

// MyListService реализует операции со списком "моё".
type MyListService struct {
	repo WatchlistRepository
	log  *slog.Logger
}

// NewMyListService создает новый экземпляр MyListService.
func NewMyListService(repo WatchlistRepository, log *slog.Logger) *MyListService {
	return &MyListService{
		repo: repo,
		log:  log,
	}
}

// Add добавляет фильм в список. Возвращает false, если фильм уже был там.
func (s *MyListService) Add(ctx context.Context, userUID string, req models.DummyWatchlistItem) (bool, error) {
	item := models.WatchlistItem{
		UserUID:    userUID,
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
		GenreIDs:   req.GenreIDs,
	}
	count, err := s.repo.AddWatchlistItem(ctx, item)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.log.Info("added movie to list",
			slog.String("user_uid", userUID), slog.Int64("movie_id", req.MovieID))
	}
	return count > 0, nil
}

// List возвращает список пользователя.
func (s *MyListService) List(ctx context.Context, userUID string) ([]*models.WatchlistItem, error) {
	return s.repo.ListWatchlist(ctx, userUID)
}

// Remove удаляет фильм из списка. Возвращает false, если фильма там не было.
func (s *MyListService) Remove(ctx context.Context, userUID string, movieID int64) (bool, error) {
	count, err := s.repo.RemoveWatchlistItem(ctx, userUID, movieID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Clear очищает список, возвращает число удаленных записей.
func (s *MyListService) Clear(ctx context.Context, userUID string) (int64, error) {
	return s.repo.ClearWatchlist(ctx, userUID)
}
