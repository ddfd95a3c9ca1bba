// Package services содержит бизнес-логику оформления и отмены подписки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/plans"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// Ошибки уровня бизнес-логики подписок.
var (
	ErrNoSelectedPlan = errors.New("no selected plan")
	ErrNoSubscription = errors.New("no subscription")
)

// RecordStore описывает методы хранилища записей доступа.
type RecordStore interface {
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// SubscriptionRepository описывает работу с подписками в базе данных.
type SubscriptionRepository interface {
	// UpsertSubscription сохраняет или заменяет подписку пользователя.
	UpsertSubscription(ctx context.Context, userUID string, rec *entitlement.SubscriptionRecord) error
	// GetSubscription возвращает подписку или nil, если её нет.
	GetSubscription(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error)
	// CancelSubscription переводит подписку в статус cancelled.
	CancelSubscription(ctx context.Context, userUID string) (int64, error)
}

// SubscriptionService реализует оформление, оплату и отмену подписки.
// База данных является источником истины, запись в Redis дублируется
// для быстрого чтения вычислителем доступа.
type SubscriptionService struct {
	store RecordStore
	repo  SubscriptionRepository
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(store RecordStore, repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		store: store,
		repo:  repo,
		log:   log,
	}
}

// SelectPlan фиксирует выбранный план до оплаты. С этого момента
// начинается льготное окно доступа.
func (s *SubscriptionService) SelectPlan(ctx context.Context, userUID, planName, billingCycle string) (*entitlement.SelectedPlanRecord, error) {
	const op = "subscription.SelectPlan"

	price, err := plans.Price(planName, billingCycle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec := &entitlement.SelectedPlanRecord{
		Plan:         planName,
		BillingCycle: billingCycle,
		Price:        price,
		SelectedAt:   time.Now(),
		Status:       entitlement.StatusPending,
	}
	if err := s.store.Set(ctx, records.SelectedPlanKey(userUID), rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("plan selected",
		slog.String("user_uid", userUID),
		slog.String("plan", planName),
		slog.String("billing_cycle", billingCycle))
	return rec, nil
}

// Activate подтверждает оплату выбранного плана и создает подписку.
// Запись о выбранном плане и пробном периоде после этого не нужны.
func (s *SubscriptionService) Activate(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error) {
	const op = "subscription.Activate"

	raw, found, err := s.store.GetRaw(ctx, records.SelectedPlanKey(userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSelectedPlan)
	}
	selected, err := entitlement.ParseSelectedPlanRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSelectedPlan)
	}

	now := time.Now()
	end := now.AddDate(0, 1, 0)
	if selected.BillingCycle == entitlement.BillingYearly {
		end = now.AddDate(1, 0, 0)
	}

	rec := &entitlement.SubscriptionRecord{
		Plan:         selected.Plan,
		BillingCycle: selected.BillingCycle,
		Status:       entitlement.StatusActive,
		StartTime:    now.UnixMilli(),
		EndTime:      end.UnixMilli(),
		Price:        selected.Price,
	}

	if err := s.repo.UpsertSubscription(ctx, userUID, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Set(ctx, records.SubscriptionKey(userUID), rec); err != nil {
		s.log.Warn("failed to mirror subscription to records store", sl.Err(err))
	}
	if err := s.store.Delete(ctx, records.SelectedPlanKey(userUID)); err != nil {
		s.log.Warn("failed to delete selected plan record", sl.Err(err))
	}
	if err := s.store.Delete(ctx, records.TrialKey(userUID)); err != nil {
		s.log.Warn("failed to delete trial record", sl.Err(err))
	}

	s.log.Info("subscription activated",
		slog.String("user_uid", userUID),
		slog.String("plan", rec.Plan))
	return rec, nil
}

// Cancel отменяет подписку. Запись сохраняется со статусом cancelled,
// доступ действует до конца оплаченного периода.
func (s *SubscriptionService) Cancel(ctx context.Context, userUID string) error {
	const op = "subscription.Cancel"

	count, err := s.repo.CancelSubscription(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoSubscription)
	}

	rec, err := s.repo.GetSubscription(ctx, userUID)
	if err == nil && rec != nil {
		if mirrorErr := s.store.Set(ctx, records.SubscriptionKey(userUID), rec); mirrorErr != nil {
			s.log.Warn("failed to mirror cancelled subscription", sl.Err(mirrorErr))
		}
	}

	s.log.Info("subscription cancelled", slog.String("user_uid", userUID))
	return nil
}

// Read возвращает подписку пользователя из базы данных,
// при её недоступности из записи в Redis.
func (s *SubscriptionService) Read(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error) {
	const op = "subscription.Read"

	rec, err := s.repo.GetSubscription(ctx, userUID)
	if err != nil {
		s.log.Warn("subscription read from database failed, falling back to records store",
			slog.String("user_uid", userUID), sl.Err(err))
		raw, found, rawErr := s.store.GetRaw(ctx, records.SubscriptionKey(userUID))
		if rawErr != nil {
			return nil, fmt.Errorf("%s: %w", op, rawErr)
		}
		if !found {
			return nil, fmt.Errorf("%s: %w", op, ErrNoSubscription)
		}
		parsed, parseErr := entitlement.ParseSubscriptionRecord(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNoSubscription)
		}
		return parsed, nil
	}
	if rec == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSubscription)
	}
	return rec, nil
}
