// Package entitlement содержит доменную логику проверки права доступа
// к платному контенту: типы персистентных записей (пробный период, подписка,
// выбранный план), их нормализацию при чтении из хранилища и чистую функцию
// вычисления решения по правилам приоритета.
package entitlement

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TrialDuration длительность пробного периода с момента активации.
const TrialDuration = 7 * 24 * time.Hour

// GraceWindow длительность льготного окна после выбора плана без оплаты.
const GraceWindow = 30 * 24 * time.Hour

// Статусы записи подписки.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusTrial     = "trial"
	StatusCancelled = "cancelled"
)

// Циклы списания.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// ErrCorruptRecord означает, что запись в хранилище не удалось разобрать.
// Для вычисления решения такая запись эквивалентна отсутствующей,
// ошибка используется только для логирования.
var ErrCorruptRecord = errors.New("corrupt record")

// TrialRecord запись об активированном пробном периоде.
type TrialRecord struct {
	StartTimestamp int64 `json:"startTimestamp"` // Начало пробного периода, unix-миллисекунды
}

// Start возвращает момент начала пробного периода.
func (r *TrialRecord) Start() time.Time {
	return time.UnixMilli(r.StartTimestamp)
}

// ActiveAt сообщает, действует ли пробный период в момент now.
func (r *TrialRecord) ActiveAt(now time.Time) bool {
	return now.Sub(r.Start()) < TrialDuration
}

// ParseTrialRecord разбирает запись пробного периода из хранилища.
// Старые клиенты писали голое число миллисекунд вместо JSON-объекта,
// поэтому оба формата принимаются.
func ParseTrialRecord(raw []byte) (*TrialRecord, error) {
	const op = "entitlement.ParseTrialRecord"

	s := strings.TrimSpace(string(raw))
	if s == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}

	if s[0] == '{' {
		var rec TrialRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.StartTimestamp <= 0 {
			return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
		}
		return &rec, nil
	}

	ms, err := strconv.ParseInt(strings.Trim(s, `"`), 10, 64)
	if err != nil || ms <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}
	return &TrialRecord{StartTimestamp: ms}, nil
}

// SubscriptionRecord запись об оформленной подписке.
// Запись никогда не удаляется, только заменяется новой по тому же ключу;
// при отмене статус переходит в cancelled.
type SubscriptionRecord struct {
	Plan         string  `json:"plan"`
	BillingCycle string  `json:"billingCycle"`
	Status       string  `json:"status"`
	StartTime    int64   `json:"startTime"` // unix-миллисекунды
	EndTime      int64   `json:"endTime"`   // unix-миллисекунды
	Price        float64 `json:"price"`
}

// End возвращает момент окончания оплаченного периода.
func (s *SubscriptionRecord) End() time.Time {
	return time.UnixMilli(s.EndTime)
}

// ActiveAt сообщает, даёт ли подписка доступ в момент now.
// Статус pending трактуется как полный доступ: это льготный период
// до подтверждения оплаты, а не граница безопасности.
func (s *SubscriptionRecord) ActiveAt(now time.Time) bool {
	switch s.Status {
	case StatusActive, StatusPending, StatusTrial:
		return true
	}
	return now.UnixMilli() < s.EndTime
}

// ParseSubscriptionRecord разбирает запись подписки, приводя легаси-поля
// (billing, startDate/endDate) к текущей схеме.
func ParseSubscriptionRecord(raw []byte) (*SubscriptionRecord, error) {
	const op = "entitlement.ParseSubscriptionRecord"

	var aux struct {
		Plan         string  `json:"plan"`
		BillingCycle string  `json:"billingCycle"`
		Billing      string  `json:"billing"`
		Status       string  `json:"status"`
		StartTime    int64   `json:"startTime"`
		EndTime      int64   `json:"endTime"`
		StartDate    int64   `json:"startDate"`
		EndDate      int64   `json:"endDate"`
		Price        float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}

	rec := SubscriptionRecord{
		Plan:         aux.Plan,
		BillingCycle: aux.BillingCycle,
		Status:       aux.Status,
		StartTime:    aux.StartTime,
		EndTime:      aux.EndTime,
		Price:        aux.Price,
	}
	if rec.BillingCycle == "" {
		rec.BillingCycle = aux.Billing
	}
	if rec.StartTime == 0 {
		rec.StartTime = aux.StartDate
	}
	if rec.EndTime == 0 {
		rec.EndTime = aux.EndDate
	}

	if rec.Status == "" && rec.EndTime == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}
	return &rec, nil
}

// SelectedPlanRecord промежуточная запись о выбранном, но не оплаченном плане.
type SelectedPlanRecord struct {
	Plan         string    `json:"plan"`
	BillingCycle string    `json:"billingCycle"`
	Price        float64   `json:"price"`
	SelectedAt   time.Time `json:"-"`
	Status       string    `json:"status"`
}

// MarshalJSON сериализует запись, представляя selectedAt строкой RFC3339.
func (p SelectedPlanRecord) MarshalJSON() ([]byte, error) {
	type alias SelectedPlanRecord
	return json.Marshal(struct {
		alias
		SelectedAt string `json:"selectedAt"`
	}{
		alias:      alias(p),
		SelectedAt: p.SelectedAt.UTC().Format(time.RFC3339),
	})
}

// WithinGrace сообщает, действует ли льготное окно в момент now.
func (p *SelectedPlanRecord) WithinGrace(now time.Time) bool {
	return now.Sub(p.SelectedAt) < GraceWindow
}

// ParseSelectedPlanRecord разбирает запись о выбранном плане.
func ParseSelectedPlanRecord(raw []byte) (*SelectedPlanRecord, error) {
	const op = "entitlement.ParseSelectedPlanRecord"

	var aux struct {
		Plan         string  `json:"plan"`
		BillingCycle string  `json:"billingCycle"`
		Price        float64 `json:"price"`
		SelectedAt   string  `json:"selectedAt"`
		Status       string  `json:"status"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}

	selectedAt, err := time.Parse(time.RFC3339, aux.SelectedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrCorruptRecord)
	}

	return &SelectedPlanRecord{
		Plan:         aux.Plan,
		BillingCycle: aux.BillingCycle,
		Price:        aux.Price,
		SelectedAt:   selectedAt,
		Status:       aux.Status,
	}, nil
}
