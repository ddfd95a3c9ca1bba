package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrialRecord(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{
			name: "json object",
			raw:  `{"startTimestamp":1749700000000}`,
			want: 1749700000000,
		},
		{
			name: "legacy bare number",
			raw:  `1749700000000`,
			want: 1749700000000,
		},
		{
			name: "legacy quoted number",
			raw:  `"1749700000000"`,
			want: 1749700000000,
		},
		{
			name:    "empty payload",
			raw:     ``,
			wantErr: true,
		},
		{
			name:    "garbage",
			raw:     `not-a-record`,
			wantErr: true,
		},
		{
			name:    "zero timestamp",
			raw:     `{"startTimestamp":0}`,
			wantErr: true,
		},
		{
			name:    "negative timestamp",
			raw:     `-42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseTrialRecord([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCorruptRecord)
				assert.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.StartTimestamp)
		})
	}
}

func TestParseSubscriptionRecord(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SubscriptionRecord
		wantErr bool
	}{
		{
			name: "current schema",
			raw:  `{"plan":"premium","billingCycle":"yearly","status":"active","startTime":1749700000000,"endTime":1781236000000,"price":2999}`,
			want: SubscriptionRecord{
				Plan:         "premium",
				BillingCycle: "yearly",
				Status:       "active",
				StartTime:    1749700000000,
				EndTime:      1781236000000,
				Price:        2999,
			},
		},
		{
			name: "legacy billing and date keys",
			raw:  `{"plan":"basic","billing":"monthly","status":"active","startDate":1749700000000,"endDate":1752292000000,"price":199}`,
			want: SubscriptionRecord{
				Plan:         "basic",
				BillingCycle: "monthly",
				Status:       "active",
				StartTime:    1749700000000,
				EndTime:      1752292000000,
				Price:        199,
			},
		},
		{
			name:    "not json",
			raw:     `12345 oops`,
			wantErr: true,
		},
		{
			name:    "empty object",
			raw:     `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseSubscriptionRecord([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCorruptRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *rec)
		})
	}
}

func TestParseSelectedPlanRecord(t *testing.T) {
	selectedAt := time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC)

	rec, err := ParseSelectedPlanRecord([]byte(
		`{"plan":"standard","billingCycle":"monthly","price":299,"selectedAt":"2025-06-12T10:30:00Z","status":"pending"}`))
	require.NoError(t, err)
	assert.Equal(t, "standard", rec.Plan)
	assert.Equal(t, "monthly", rec.BillingCycle)
	assert.Equal(t, 299.0, rec.Price)
	assert.True(t, rec.SelectedAt.Equal(selectedAt))
	assert.Equal(t, "pending", rec.Status)

	_, err = ParseSelectedPlanRecord([]byte(`{"plan":"standard","selectedAt":"yesterday"}`))
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = ParseSelectedPlanRecord([]byte(`broken`))
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestSelectedPlanRecord_JSONRoundTrip(t *testing.T) {
	rec := SelectedPlanRecord{
		Plan:         "premium",
		BillingCycle: "yearly",
		Price:        2999,
		SelectedAt:   time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC),
		Status:       "pending",
	}

	raw, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"selectedAt":"2025-06-12T10:30:00Z"`)

	parsed, err := ParseSelectedPlanRecord(raw)
	require.NoError(t, err)
	assert.True(t, parsed.SelectedAt.Equal(rec.SelectedAt))
	assert.Equal(t, rec.Plan, parsed.Plan)
}
