package records

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movieflix-backend/internal/config"
	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
)

func setupTestStore(t *testing.T) *Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	store, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return store
}

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "trial:uid-1", TrialKey("uid-1"))
	assert.Equal(t, "subscription:uid-1", SubscriptionKey("uid-1"))
	assert.Equal(t, "selectedPlan:guest", SelectedPlanKey(GuestUID))
}

func TestSetAndGetRaw(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	rec := entitlement.TrialRecord{StartTimestamp: 1749700000000}
	require.NoError(t, store.Set(ctx, TrialKey("uid-1"), rec))

	raw, found, err := store.GetRaw(ctx, TrialKey("uid-1"))
	require.NoError(t, err)
	require.True(t, found)

	parsed, err := entitlement.ParseTrialRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, rec.StartTimestamp, parsed.StartTimestamp)
}

func TestGetRaw_Missing(t *testing.T) {
	store := setupTestStore(t)

	raw, found, err := store.GetRaw(context.Background(), TrialKey("nobody"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, raw)
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetRaw(ctx, TrialKey("uid-1"), []byte("1749700000000")))
	require.NoError(t, store.Delete(ctx, TrialKey("uid-1")))

	_, found, err := store.GetRaw(ctx, TrialKey("uid-1"))
	require.NoError(t, err)
	assert.False(t, found)

	// повторное удаление не считается ошибкой
	require.NoError(t, store.Delete(ctx, TrialKey("uid-1")))
}

func TestScanTrialKeys(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetRaw(ctx, TrialKey("uid-1"), []byte("1")))
	require.NoError(t, store.SetRaw(ctx, TrialKey("uid-2"), []byte("2")))
	require.NoError(t, store.SetRaw(ctx, SubscriptionKey("uid-3"), []byte("{}")))

	keys, err := store.ScanTrialKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"trial:uid-1", "trial:uid-2"}, keys)
}
