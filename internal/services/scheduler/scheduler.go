// Package services содержит планировщик уведомлений об окончании пробного периода.
package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/models"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// RecordScanner описывает чтение записей пробных периодов из хранилища.
type RecordScanner interface {
	// ScanTrialKeys возвращает все ключи пробных периодов.
	ScanTrialKeys(ctx context.Context) ([]string, error)
	// GetRaw возвращает сырое значение по ключу.
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
}

// UserRepository описывает чтение пользователей из базы данных.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// SchedulerService находит пробные периоды, истекающие в ближайшие
// сутки, и публикует уведомления для воркера-отправителя.
type SchedulerService struct {
	store RecordScanner
	users UserRepository
	log   *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(store RecordScanner, users UserRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		store: store,
		users: users,
		log:   log,
	}
}

// FindExpiringTrials периодически сканирует пробные периоды и
// публикует уведомления об истекающих в ближайшие сутки.
func (s *SchedulerService) FindExpiringTrials(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringTrials(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringTrials(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringTrials(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for expiring trials")
	keys, err := s.store.ScanTrialKeys(ctx)
	if err != nil {
		s.log.Error("failed to scan trial keys", sl.Err(err))
		return
	}
	if len(keys) == 0 {
		s.log.Info("no trial records found")
		return
	}

	now := time.Now()
	published := 0
	for _, key := range keys {
		userUID := strings.TrimPrefix(key, records.TrialKey(""))
		if userUID == records.GuestUID {
			continue
		}

		raw, found, err := s.store.GetRaw(ctx, key)
		if err != nil || !found {
			continue
		}
		rec, parseErr := entitlement.ParseTrialRecord(raw)
		if parseErr != nil {
			s.log.Warn("corrupt trial record", slog.String("key", key), sl.Err(parseErr))
			continue
		}

		remaining := entitlement.Remaining(now, rec.Start())
		if remaining <= 0 || remaining > 24*time.Hour {
			continue
		}

		user, err := s.users.GetUser(ctx, userUID)
		if err != nil {
			s.log.Warn("failed to load user for trial notice",
				slog.String("user_uid", userUID), sl.Err(err))
			continue
		}

		notice := models.TrialExpiryNotice{
			Email:    user.Email,
			Username: user.Username,
			EndsAt:   rec.Start().Add(entitlement.TrialDuration),
		}
		if err := rabbitmq.PublishMessage(channel, "notifications", "trial.expiring", notice); err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
			continue
		}
		published++
	}
	s.log.Info("trial scan finished",
		slog.Int("scanned", len(keys)), slog.Int("published", published))
}
