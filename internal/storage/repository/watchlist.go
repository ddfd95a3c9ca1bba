package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// AddWatchlistItem добавляет фильм в список пользователя.
// Повторное добавление того же фильма игнорируется, возвращается
// число фактически добавленных строк.
func (s *Storage) AddWatchlistItem(ctx context.Context, item models.WatchlistItem) (int64, error) {
	const op = "storage.AddWatchlistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	genres, err := json.Marshal(item.GenreIDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO watchlist (user_uid, movie_id, title, poster_path, genre_ids)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid, movie_id) DO NOTHING;`
	res, err := s.DB.ExecContext(ctx, query,
		item.UserUID, item.MovieID, item.Title, item.PosterPath, genres)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListWatchlist возвращает список пользователя, свежие записи первыми.
func (s *Storage) ListWatchlist(ctx context.Context, userUID string) ([]*models.WatchlistItem, error) {
	const op = "storage.ListWatchlist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, movie_id, title, poster_path, genre_ids, added_at
			  FROM watchlist
			  WHERE user_uid = $1
			  ORDER BY added_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		var genres []byte
		if err = rows.Scan(&item.ID, &item.UserUID, &item.MovieID, &item.Title,
			&item.PosterPath, &genres, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(genres, &item.GenreIDs); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveWatchlistItem удаляет фильм из списка, возвращает число удаленных строк.
func (s *Storage) RemoveWatchlistItem(ctx context.Context, userUID string, movieID int64) (int64, error) {
	const op = "storage.RemoveWatchlistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_uid = $1 AND movie_id = $2`, userUID, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ClearWatchlist очищает весь список пользователя.
func (s *Storage) ClearWatchlist(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.ClearWatchlist"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_uid = $1`, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
