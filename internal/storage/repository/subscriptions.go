package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
)

// UpsertSubscription сохраняет авторитетную запись подписки пользователя.
// На одного пользователя хранится одна строка, новая запись заменяет старую.
func (s *Storage) UpsertSubscription(ctx context.Context, userUID string, rec *entitlement.SubscriptionRecord) error {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan, billing_cycle, status, start_time, end_time, price, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			  ON CONFLICT (user_uid) DO UPDATE SET
			      plan = EXCLUDED.plan,
			      billing_cycle = EXCLUDED.billing_cycle,
			      status = EXCLUDED.status,
			      start_time = EXCLUDED.start_time,
			      end_time = EXCLUDED.end_time,
			      price = EXCLUDED.price,
			      updated_at = now();`
	_, err := s.DB.ExecContext(ctx, query,
		userUID, rec.Plan, rec.BillingCycle, rec.Status,
		time.UnixMilli(rec.StartTime).UTC(), time.UnixMilli(rec.EndTime).UTC(), rec.Price)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает авторитетную запись подписки пользователя.
// Отсутствие записи не является ошибкой: возвращается (nil, nil).
func (s *Storage) GetSubscription(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan, billing_cycle, status, start_time, end_time, price
			  FROM subscriptions
			  WHERE user_uid = $1`
	var (
		rec        entitlement.SubscriptionRecord
		start, end time.Time
	)
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&rec.Plan, &rec.BillingCycle, &rec.Status, &start, &end, &rec.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.StartTime = start.UnixMilli()
	rec.EndTime = end.UnixMilli()
	return &rec, nil
}

// CancelSubscription переводит подписку пользователя в статус cancelled,
// возвращает число обновленных строк. Запись не удаляется.
func (s *Storage) CancelSubscription(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = now() WHERE user_uid = $2`,
		entitlement.StatusCancelled, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
