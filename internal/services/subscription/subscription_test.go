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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	services "github.com/magabrotheeeer/movieflix-backend/internal/services/subscription"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// Мок для SubscriptionRepository
type SubRepoMock struct {
	mock.Mock
}

func (m *SubRepoMock) UpsertSubscription(ctx context.Context, userUID string, rec *entitlement.SubscriptionRecord) error {
	args := m.Called(ctx, userUID, rec)
	return args.Error(0)
}

func (m *SubRepoMock) GetSubscription(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.SubscriptionRecord), args.Error(1)
}

func (m *SubRepoMock) CancelSubscription(ctx context.Context, userUID string) (int64, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(int64), args.Error(1)
}

func setupService(t *testing.T, repo *SubRepoMock) (*services.SubscriptionService, *records.Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := &records.Store{Db: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewSubscriptionService(store, repo, log), store
}

func TestSubscriptionService_SelectPlan(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t, new(SubRepoMock))

	rec, err := svc.SelectPlan(ctx, "user-1", "standard", entitlement.BillingMonthly)
	require.NoError(t, err)
	assert.Equal(t, "standard", rec.Plan)
	assert.Equal(t, float64(299), rec.Price)
	assert.Equal(t, entitlement.StatusPending, rec.Status)

	raw, found, err := store.GetRaw(ctx, records.SelectedPlanKey("user-1"))
	require.NoError(t, err)
	require.True(t, found)

	parsed, err := entitlement.ParseSelectedPlanRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "standard", parsed.Plan)
	assert.True(t, parsed.WithinGrace(time.Now()))
}

func TestSubscriptionService_SelectPlan_UnknownPlan(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, new(SubRepoMock))

	_, err := svc.SelectPlan(ctx, "user-1", "platinum", entitlement.BillingMonthly)
	require.Error(t, err)
}

func TestSubscriptionService_Activate(t *testing.T) {
	ctx := context.Background()
	repo := new(SubRepoMock)
	repo.On("UpsertSubscription", mock.Anything, "user-1",
		mock.MatchedBy(func(rec *entitlement.SubscriptionRecord) bool {
			return rec.Plan == "premium" &&
				rec.Status == entitlement.StatusActive &&
				rec.Price == 2999
		})).Return(nil).Once()

	svc, store := setupService(t, repo)

	_, err := svc.SelectPlan(ctx, "user-1", "premium", entitlement.BillingYearly)
	require.NoError(t, err)

	trial := &entitlement.TrialRecord{StartTimestamp: time.Now().UnixMilli()}
	require.NoError(t, store.Set(ctx, records.TrialKey("user-1"), trial))

	rec, err := svc.Activate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusActive, rec.Status)

	// год доступа при годовом цикле
	wantEnd := time.Now().AddDate(1, 0, 0)
	assert.WithinDuration(t, wantEnd, rec.End(), time.Minute)

	// записи о выбранном плане и пробном периоде больше не нужны
	_, found, err := store.GetRaw(ctx, records.SelectedPlanKey("user-1"))
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.GetRaw(ctx, records.TrialKey("user-1"))
	require.NoError(t, err)
	assert.False(t, found)

	// подписка продублирована в хранилище записей
	raw, found, err := store.GetRaw(ctx, records.SubscriptionKey("user-1"))
	require.NoError(t, err)
	require.True(t, found)
	mirrored, err := entitlement.ParseSubscriptionRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "premium", mirrored.Plan)

	repo.AssertExpectations(t)
}

func TestSubscriptionService_Activate_NoSelectedPlan(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, new(SubRepoMock))

	_, err := svc.Activate(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNoSelectedPlan)
}

func TestSubscriptionService_Cancel(t *testing.T) {
	ctx := context.Background()
	repo := new(SubRepoMock)
	cancelled := &entitlement.SubscriptionRecord{
		Plan:    "basic",
		Status:  entitlement.StatusCancelled,
		EndTime: time.Now().AddDate(0, 1, 0).UnixMilli(),
	}
	repo.On("CancelSubscription", mock.Anything, "user-1").Return(int64(1), nil).Once()
	repo.On("GetSubscription", mock.Anything, "user-1").Return(cancelled, nil).Once()

	svc, store := setupService(t, repo)

	require.NoError(t, svc.Cancel(ctx, "user-1"))

	raw, found, err := store.GetRaw(ctx, records.SubscriptionKey("user-1"))
	require.NoError(t, err)
	require.True(t, found)
	mirrored, err := entitlement.ParseSubscriptionRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusCancelled, mirrored.Status)

	repo.AssertExpectations(t)
}

func TestSubscriptionService_Cancel_NoSubscription(t *testing.T) {
	ctx := context.Background()
	repo := new(SubRepoMock)
	repo.On("CancelSubscription", mock.Anything, "user-1").Return(int64(0), nil).Once()

	svc, _ := setupService(t, repo)

	err := svc.Cancel(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNoSubscription)
}

func TestSubscriptionService_Read_FallsBackToRecords(t *testing.T) {
	ctx := context.Background()
	repo := new(SubRepoMock)
	repo.On("GetSubscription", mock.Anything, "user-1").
		Return(nil, assert.AnError).Once()

	svc, store := setupService(t, repo)

	rec := &entitlement.SubscriptionRecord{
		Plan:   "standard",
		Status: entitlement.StatusActive,
	}
	require.NoError(t, store.Set(ctx, records.SubscriptionKey("user-1"), rec))

	got, err := svc.Read(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "standard", got.Plan)
}
