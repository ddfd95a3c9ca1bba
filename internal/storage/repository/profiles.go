package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// CreateProfile создает профиль просмотра и возвращает его ID.
// Первый профиль пользователя сразу становится активным.
func (s *Storage) CreateProfile(ctx context.Context, profile models.Profile) (int, error) {
	const op = "storage.CreateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO profiles (user_uid, name, is_kids, is_active)
			  VALUES ($1, $2, $3,
			      NOT EXISTS (SELECT 1 FROM profiles WHERE user_uid = $1))
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		profile.UserUID, profile.Name, profile.IsKids).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListProfiles возвращает профили пользователя.
func (s *Storage) ListProfiles(ctx context.Context, userUID string) ([]*models.Profile, error) {
	const op = "storage.ListProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, is_kids, is_active, created_at
			  FROM profiles
			  WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err = rows.Scan(&p.ID, &p.UserUID, &p.Name, &p.IsKids,
			&p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ActivateProfile делает профиль активным, снимая флаг с остальных
// профилей пользователя. Возвращает число активированных строк.
func (s *Storage) ActivateProfile(ctx context.Context, userUID string, profileID int) (int64, error) {
	const op = "storage.ActivateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE profiles SET is_active = false WHERE user_uid = $1`, userUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE profiles SET is_active = true WHERE user_uid = $1 AND id = $2`,
		userUID, profileID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
