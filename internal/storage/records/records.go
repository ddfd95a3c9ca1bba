// Package records реализует хранилище персистентных записей доступа
// (пробный период, подписка, выбранный план) поверх Redis.
//
// Пространство ключей единое и консистентное: trial:{uid},
// subscription:{uid}, selectedPlan:{uid}. Для неаутентифицированного
// состояния используется служебный идентификатор guest, его записи
// переносятся на пользователя при входе.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/movieflix-backend/internal/config"
)

// GuestUID идентификатор анонимного контекста до входа.
const GuestUID = "guest"

// Store инкапсулирует подключение к Redis.
type Store struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "records.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// TrialKey возвращает ключ записи пробного периода.
func TrialKey(uid string) string {
	return "trial:" + uid
}

// SubscriptionKey возвращает ключ записи подписки.
func SubscriptionKey(uid string) string {
	return "subscription:" + uid
}

// SelectedPlanKey возвращает ключ записи выбранного плана.
func SelectedPlanKey(uid string) string {
	return "selectedPlan:" + uid
}

// GetRaw возвращает сырое значение по ключу.
// Второй результат false означает отсутствие записи.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "records.GetRaw"
	val, err := s.Db.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set сериализует значение в JSON и сохраняет его без срока жизни:
// записи управляются датами внутри самих значений.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	const op = "records.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Db.Set(ctx, key, jsonData, 0).Err()
}

// SetRaw сохраняет сырое значение по ключу.
func (s *Store) SetRaw(ctx context.Context, key string, raw []byte) error {
	return s.Db.Set(ctx, key, raw, 0).Err()
}

// Delete удаляет запись по ключу. Отсутствие записи не является ошибкой.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.Db.Del(ctx, key).Err()
}

// ScanTrialKeys возвращает все ключи пробных периодов.
// Используется планировщиком уведомлений об истечении.
func (s *Store) ScanTrialKeys(ctx context.Context) ([]string, error) {
	const op = "records.ScanTrialKeys"
	var keys []string
	iter := s.Db.Scan(ctx, 0, TrialKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return keys, nil
}
