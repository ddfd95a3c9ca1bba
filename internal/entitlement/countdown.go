package entitlement

import "time"

// Countdown разложение оставшегося времени пробного периода
// для отображения в баннере.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Remaining возвращает оставшееся время пробного периода на момент now.
// Отрицательное значение означает, что период истек.
func Remaining(now, start time.Time) time.Duration {
	return TrialDuration - now.Sub(start)
}

// Breakdown раскладывает оставшееся время на дни, часы и минуты
// с округлением вниз.
func Breakdown(remaining time.Duration) Countdown {
	if remaining < 0 {
		remaining = 0
	}
	return Countdown{
		Days:    int(remaining / (24 * time.Hour)),
		Hours:   int(remaining % (24 * time.Hour) / time.Hour),
		Minutes: int(remaining % time.Hour / time.Minute),
	}
}
