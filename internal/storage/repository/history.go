package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// historyLimit максимальный размер списка "продолжить просмотр".
const historyLimit = 10

// UpsertHistoryItem добавляет фильм в историю просмотра или поднимает его
// наверх, после чего обрезает историю до последних десяти записей.
func (s *Storage) UpsertHistoryItem(ctx context.Context, item models.HistoryItem) error {
	const op = "storage.UpsertHistoryItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO watch_history (user_uid, movie_id, title, poster_path, watched_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_uid, movie_id) DO UPDATE SET
		    title = EXCLUDED.title,
		    poster_path = EXCLUDED.poster_path,
		    watched_at = now();`,
		item.UserUID, item.MovieID, item.Title, item.PosterPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM watch_history
		WHERE user_uid = $1 AND id NOT IN (
		    SELECT id FROM watch_history
		    WHERE user_uid = $1
		    ORDER BY watched_at DESC
		    LIMIT $2
		);`, item.UserUID, historyLimit)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListHistory возвращает историю просмотра, свежие записи первыми.
func (s *Storage) ListHistory(ctx context.Context, userUID string) ([]*models.HistoryItem, error) {
	const op = "storage.ListHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, movie_id, title, poster_path, watched_at
			  FROM watch_history
			  WHERE user_uid = $1
			  ORDER BY watched_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.HistoryItem
	for rows.Next() {
		var item models.HistoryItem
		if err = rows.Scan(&item.ID, &item.UserUID, &item.MovieID, &item.Title,
			&item.PosterPath, &item.WatchedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ClearHistory очищает историю просмотра пользователя.
func (s *Storage) ClearHistory(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.ClearHistory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM watch_history WHERE user_uid = $1`, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
