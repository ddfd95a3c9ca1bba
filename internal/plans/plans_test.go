package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_ReturnsCopy(t *testing.T) {
	first := All()
	first[0].MonthlyPrice = 1

	second := All()
	assert.Equal(t, 199.0, second[0].MonthlyPrice)
	assert.Len(t, second, 3)
}

func TestByName(t *testing.T) {
	plan, err := ByName("standard")
	require.NoError(t, err)
	assert.Equal(t, "Full HD (1080p)", plan.Quality)
	assert.Equal(t, 2, plan.Screens)

	_, err = ByName("ultimate")
	assert.Error(t, err)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		plan    string
		billing string
		want    float64
		wantErr bool
	}{
		{name: "basic monthly", plan: "basic", billing: "monthly", want: 199},
		{name: "premium yearly", plan: "premium", billing: "yearly", want: 2999},
		{name: "unknown plan", plan: "free", billing: "monthly", wantErr: true},
		{name: "unknown billing", plan: "basic", billing: "weekly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.plan, tt.billing)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
