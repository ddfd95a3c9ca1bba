package entitlement

import (
	"errors"
	"time"
)

// ErrUnauthenticated означает отсутствие текущего пользователя;
// вызывающая сторона должна перенаправить на страницу входа.
var ErrUnauthenticated = errors.New("unauthenticated")

// Reason причина, по которой доступ разрешен.
type Reason string

// Возможные причины положительного решения.
const (
	ReasonTrial        Reason = "trial"
	ReasonSubscription Reason = "subscription"
	ReasonSelectedPlan Reason = "selected_plan"
	ReasonNone         Reason = ""
)

// Records набор записей пользователя, прочитанных из хранилища.
// Отсутствующая или нечитаемая запись представляется nil.
type Records struct {
	Trial        *TrialRecord
	Subscription *SubscriptionRecord
	SelectedPlan *SelectedPlanRecord
}

// Decision результат вычисления права доступа.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Evaluate вычисляет решение о доступе по правилам приоритета,
// первый сработавший сигнал выигрывает:
//  1. действующий пробный период;
//  2. подписка (active, pending и trial дают доступ, иначе по дате окончания);
//  3. льготное окно после выбора плана.
//
// Функция чистая: не выполняет побочных эффектов и не обращается к хранилищу.
func Evaluate(now time.Time, recs Records) Decision {
	if recs.Trial != nil && recs.Trial.ActiveAt(now) {
		return Decision{Allowed: true, Reason: ReasonTrial}
	}
	if recs.Subscription != nil && recs.Subscription.ActiveAt(now) {
		return Decision{Allowed: true, Reason: ReasonSubscription}
	}
	if recs.SelectedPlan != nil && recs.SelectedPlan.WithinGrace(now) {
		return Decision{Allowed: true, Reason: ReasonSelectedPlan}
	}
	return Decision{Allowed: false, Reason: ReasonNone}
}
