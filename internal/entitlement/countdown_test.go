package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakdown(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		want      Countdown
	}{
		{
			name:      "full window",
			remaining: TrialDuration,
			want:      Countdown{Days: 7, Hours: 0, Minutes: 0},
		},
		{
			name:      "one minute left",
			remaining: time.Minute,
			want:      Countdown{Days: 0, Hours: 0, Minutes: 1},
		},
		{
			name:      "rounds seconds down",
			remaining: time.Minute + 59*time.Second,
			want:      Countdown{Days: 0, Hours: 0, Minutes: 1},
		},
		{
			name:      "mixed",
			remaining: 2*24*time.Hour + 5*time.Hour + 42*time.Minute,
			want:      Countdown{Days: 2, Hours: 5, Minutes: 42},
		},
		{
			name:      "expired clamps to zero",
			remaining: -time.Hour,
			want:      Countdown{Days: 0, Hours: 0, Minutes: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breakdown(tt.remaining))
		})
	}
}

func TestRemaining_AlmostExpired(t *testing.T) {
	// пробный период начался 6д23ч59м назад, остается одна минута
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-(TrialDuration - time.Minute))

	remaining := Remaining(now, start)
	assert.Equal(t, time.Minute, remaining)
	assert.Equal(t, Countdown{Days: 0, Hours: 0, Minutes: 1}, Breakdown(remaining))

	// спустя 60 секунд период истек
	remaining = Remaining(now.Add(time.Minute), start)
	assert.LessOrEqual(t, remaining, time.Duration(0))
}
