// Package services содержит бизнес-логику пробного периода и баннера обратного отсчета.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// RecordStore описывает методы хранилища записей доступа.
type RecordStore interface {
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Banner состояние баннера обратного отсчета пробного периода.
type Banner struct {
	Active    bool                  `json:"active"`
	Expired   bool                  `json:"expired"`
	Countdown entitlement.Countdown `json:"countdown"`
	EndsAt    time.Time             `json:"ends_at"`
}

// TrialService управляет записью пробного периода пользователя.
type TrialService struct {
	store RecordStore
	log   *slog.Logger
}

// NewTrialService создает новый экземпляр TrialService.
func NewTrialService(store RecordStore, log *slog.Logger) *TrialService {
	return &TrialService{
		store: store,
		log:   log,
	}
}

// Start активирует пробный период. Повторный вызов не сдвигает
// начало: действующая запись возвращается как есть.
func (s *TrialService) Start(ctx context.Context, userUID string) (*entitlement.TrialRecord, error) {
	const op = "trial.Start"

	raw, found, err := s.store.GetRaw(ctx, records.TrialKey(userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		rec, parseErr := entitlement.ParseTrialRecord(raw)
		if parseErr == nil {
			s.log.Info("trial already started", slog.String("user_uid", userUID))
			return rec, nil
		}
		// нечитаемая запись перезаписывается новой
		s.log.Warn("corrupt trial record, restarting trial", sl.Err(parseErr))
	}

	rec := &entitlement.TrialRecord{StartTimestamp: time.Now().UnixMilli()}
	if err := s.store.Set(ctx, records.TrialKey(userUID), rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trial started", slog.String("user_uid", userUID))
	return rec, nil
}

// End завершает пробный период, удаляя его запись.
func (s *TrialService) End(ctx context.Context, userUID string) error {
	const op = "trial.End"
	if err := s.store.Delete(ctx, records.TrialKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trial ended", slog.String("user_uid", userUID))
	return nil
}

// ErrNoTrial означает, что пробный период не активировался.
var ErrNoTrial = errors.New("no trial record")

// Banner возвращает состояние баннера обратного отсчета.
// Обратный отсчет раскладывается на дни, часы и минуты с округлением вниз.
func (s *TrialService) Banner(ctx context.Context, userUID string) (*Banner, error) {
	const op = "trial.Banner"

	raw, found, err := s.store.GetRaw(ctx, records.TrialKey(userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrNoTrial)
	}

	rec, parseErr := entitlement.ParseTrialRecord(raw)
	if parseErr != nil {
		s.log.Warn("corrupt trial record", slog.String("user_uid", userUID), sl.Err(parseErr))
		return nil, fmt.Errorf("%s: %w", op, ErrNoTrial)
	}

	now := time.Now()
	remaining := entitlement.Remaining(now, rec.Start())
	if remaining <= 0 {
		// истекшая запись больше не нужна
		if delErr := s.store.Delete(ctx, records.TrialKey(userUID)); delErr != nil {
			s.log.Warn("failed to delete expired trial record",
				slog.String("user_uid", userUID), sl.Err(delErr))
		}
	}
	return &Banner{
		Active:    remaining > 0,
		Expired:   remaining <= 0,
		Countdown: entitlement.Breakdown(remaining),
		EndsAt:    rec.Start().Add(entitlement.TrialDuration),
	}, nil
}
