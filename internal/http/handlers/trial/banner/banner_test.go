package banner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/middlewarectx"
	trialservice "github.com/magabrotheeeer/movieflix-backend/internal/services/trial"
)

type TrialServiceMock struct {
	mock.Mock
}

func (m *TrialServiceMock) Banner(ctx context.Context, userUID string) (*trialservice.Banner, error) {
	args := m.Called(ctx, userUID)
	banner, _ := args.Get(0).(*trialservice.Banner)
	return banner, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(userUID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/trial/banner", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
	}
	return req.WithContext(ctx)
}

func TestBannerHandler_ServeHTTP(t *testing.T) {
	trialMock := new(TrialServiceMock)
	logger := newNoopLogger()

	handler := New(logger, trialMock)

	activeBanner := &trialservice.Banner{
		Active: true,
		Countdown: entitlement.Countdown{
			Days:    3,
			Hours:   7,
			Minutes: 42,
		},
		EndsAt: time.Now().Add(80 * time.Hour),
	}

	tests := []struct {
		name           string
		userUID        string
		mockBanner     *trialservice.Banner
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "active trial",
			userUID:        "uid-1",
			mockBanner:     activeBanner,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "no trial record",
			userUID:        "uid-2",
			mockErr:        trialservice.ErrNoTrial,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "no trial record",
			wantStatus:     "Error",
		},
		{
			name:           "unauthorized",
			userUID:        "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trialMock.ExpectedCalls = nil
			trialMock.Calls = nil

			if tt.callsService {
				trialMock.On("Banner", mock.Anything, tt.userUID).
					Return(tt.mockBanner, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.userUID))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			if tt.mockBanner != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, true, data["active"])
				countdown, ok := data["countdown"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(3), countdown["days"])
			}

			if tt.callsService {
				trialMock.AssertExpectations(t)
			}
		})
	}
}
