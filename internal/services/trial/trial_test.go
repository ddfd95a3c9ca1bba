package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	services "github.com/magabrotheeeer/movieflix-backend/internal/services/trial"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

func setupService(t *testing.T) (*services.TrialService, *records.Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := &records.Store{Db: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewTrialService(store, log), store
}

func TestTrialService_Start(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	before := time.Now().UnixMilli()
	rec, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.StartTimestamp, before)
	assert.LessOrEqual(t, rec.StartTimestamp, time.Now().UnixMilli())
}

func TestTrialService_Start_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	first, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)

	// повторный запуск не сдвигает начало периода
	second, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.StartTimestamp, second.StartTimestamp)
}

func TestTrialService_Start_ReplacesCorruptRecord(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	require.NoError(t, store.SetRaw(ctx, records.TrialKey("user-1"), []byte("not-json")))

	rec, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)
	assert.Positive(t, rec.StartTimestamp)
}

func TestTrialService_End(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	_, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, "user-1"))

	_, found, err := store.GetRaw(ctx, records.TrialKey("user-1"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTrialService_Banner(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	// осталась ровно одна минута до конца периода
	start := time.Now().Add(-entitlement.TrialDuration + time.Minute)
	rec := &entitlement.TrialRecord{StartTimestamp: start.UnixMilli()}
	require.NoError(t, store.Set(ctx, records.TrialKey("user-1"), rec))

	banner, err := svc.Banner(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, banner.Active)
	assert.False(t, banner.Expired)
	assert.Equal(t, 0, banner.Countdown.Days)
	assert.Equal(t, 0, banner.Countdown.Hours)
	assert.LessOrEqual(t, banner.Countdown.Minutes, 1)
}

func TestTrialService_Banner_Expired(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	start := time.Now().Add(-entitlement.TrialDuration - time.Hour)
	rec := &entitlement.TrialRecord{StartTimestamp: start.UnixMilli()}
	require.NoError(t, store.Set(ctx, records.TrialKey("user-1"), rec))

	banner, err := svc.Banner(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, banner.Active)
	assert.True(t, banner.Expired)
	assert.Equal(t, entitlement.Countdown{}, banner.Countdown)

	// истекшая запись удаляется при показе баннера
	_, found, err := store.GetRaw(ctx, records.TrialKey("user-1"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTrialService_Banner_NoRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Banner(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNoTrial)
}
