// Package services содержит бизнес-логику проверки права доступа к просмотру.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/metrics"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// RecordStore описывает методы хранилища записей доступа.
type RecordStore interface {
	// GetRaw возвращает сырое значение по ключу, false означает отсутствие.
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
	// Delete удаляет запись по ключу.
	Delete(ctx context.Context, key string) error
}

// SubscriptionRepository описывает чтение подписки из базы данных.
type SubscriptionRepository interface {
	// GetSubscription возвращает подписку пользователя или nil, если её нет.
	GetSubscription(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error)
}

// EntitlementService собирает записи пользователя из хранилищ и
// вычисляет решение о доступе к просмотру.
type EntitlementService struct {
	store RecordStore
	repo  SubscriptionRepository
	log   *slog.Logger
}

// NewEntitlementService создает новый экземпляр EntitlementService.
func NewEntitlementService(store RecordStore, repo SubscriptionRepository, log *slog.Logger) *EntitlementService {
	return &EntitlementService{
		store: store,
		repo:  repo,
		log:   log,
	}
}

// Records читает все записи доступа пользователя. Нечитаемая запись
// эквивалентна отсутствующей и лишь попадает в лог, решение о доступе
// из-за неё не ломается.
func (s *EntitlementService) Records(ctx context.Context, userUID string) (entitlement.Records, error) {
	const op = "entitlement.Records"

	var recs entitlement.Records

	raw, found, err := s.store.GetRaw(ctx, records.TrialKey(userUID))
	if err != nil {
		return recs, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		rec, parseErr := entitlement.ParseTrialRecord(raw)
		if parseErr != nil {
			s.log.Warn("corrupt trial record", slog.String("user_uid", userUID), sl.Err(parseErr))
		} else {
			recs.Trial = rec
		}
	}

	recs.Subscription = s.loadSubscription(ctx, userUID)

	raw, found, err = s.store.GetRaw(ctx, records.SelectedPlanKey(userUID))
	if err != nil {
		return recs, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		rec, parseErr := entitlement.ParseSelectedPlanRecord(raw)
		if parseErr != nil {
			s.log.Warn("corrupt selected plan record", slog.String("user_uid", userUID), sl.Err(parseErr))
		} else {
			recs.SelectedPlan = rec
		}
	}

	return recs, nil
}

// loadSubscription читает подписку из базы данных, а при её недоступности
// падает обратно на запись в Redis.
func (s *EntitlementService) loadSubscription(ctx context.Context, userUID string) *entitlement.SubscriptionRecord {
	rec, err := s.repo.GetSubscription(ctx, userUID)
	if err == nil && rec != nil {
		return rec
	}
	if err != nil {
		s.log.Warn("subscription read from database failed, falling back to records store",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	raw, found, err := s.store.GetRaw(ctx, records.SubscriptionKey(userUID))
	if err != nil || !found {
		return nil
	}
	parsed, parseErr := entitlement.ParseSubscriptionRecord(raw)
	if parseErr != nil {
		s.log.Warn("corrupt subscription record", slog.String("user_uid", userUID), sl.Err(parseErr))
		return nil
	}
	return parsed
}

// Check вычисляет решение о доступе пользователя к просмотру.
// Истекший пробный период попутно удаляется из хранилища.
func (s *EntitlementService) Check(ctx context.Context, userUID string) (entitlement.Decision, error) {
	const op = "entitlement.Check"

	if userUID == "" {
		return entitlement.Decision{}, fmt.Errorf("%s: %w", op, entitlement.ErrUnauthenticated)
	}

	recs, err := s.Records(ctx, userUID)
	if err != nil {
		return entitlement.Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	decision := entitlement.Evaluate(now, recs)

	if recs.Trial != nil && !recs.Trial.ActiveAt(now) {
		if delErr := s.store.Delete(ctx, records.TrialKey(userUID)); delErr != nil {
			s.log.Warn("failed to delete expired trial record", sl.Err(delErr))
		}
	}

	metrics.EntitlementDecisions.WithLabelValues(
		fmt.Sprint(decision.Allowed), string(decision.Reason)).Inc()

	return decision, nil
}

// IsUnauthenticated сообщает, является ли ошибка отсутствием пользователя.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, entitlement.ErrUnauthenticated)
}
