package services_test

import (
	"context"
	"errors"
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
	customjwt "github.com/magabrotheeeer/movieflix-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/password"
	"github.com/magabrotheeeer/movieflix-backend/internal/models"
	services "github.com/magabrotheeeer/movieflix-backend/internal/services/auth"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role, useruid string) (string, error) {
	args := m.Called(username, role, useruid)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func setupStore(t *testing.T) *records.Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return &records.Store{Db: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    bool
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			username: "testuser",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "testuser" &&
						user.UID != "" &&
						user.PasswordHash != "" &&
						user.Role == "user"
				})).Return("some-uuid-string", nil).Once()
			},
			wantErr: false,
		},
		{
			name:     "repository error",
			email:    "test@example.com",
			username: "testuser",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo)

			svc := services.NewAuthService(repo, setupStore(t), jwtMock, discardLogger())

			uid, err := svc.Register(context.Background(), tt.email, tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, uid)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Username:     "testuser",
		PasswordHash: hashed,
		Role:         "user",
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
				j.On("GenerateToken", "testuser", "user", "uid-1").Return("jwt-token", nil).Once()
			},
			wantToken: "jwt-token",
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrong",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, errors.New("not found")).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)

			svc := services.NewAuthService(repo, setupStore(t), jwtMock, discardLogger())

			token, role, uid, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, "user", role)
			assert.Equal(t, "uid-1", uid)
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_MergesGuestRecords(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(&models.User{
		UID:          "uid-1",
		Username:     "testuser",
		PasswordHash: hashed,
		Role:         "user",
	}, nil).Once()

	jwtMock := new(JwtMakerMock)
	jwtMock.On("GenerateToken", "testuser", "user", "uid-1").Return("jwt-token", nil).Once()

	// гость успел активировать пробный период до входа
	guestTrial := &entitlement.TrialRecord{StartTimestamp: time.Now().UnixMilli()}
	require.NoError(t, store.Set(ctx, records.TrialKey(records.GuestUID), guestTrial))

	svc := services.NewAuthService(repo, store, jwtMock, discardLogger())

	_, _, _, err = svc.Login(ctx, "testuser", "password123")
	require.NoError(t, err)

	raw, found, err := store.GetRaw(ctx, records.TrialKey("uid-1"))
	require.NoError(t, err)
	require.True(t, found, "guest trial should move to the user")

	merged, err := entitlement.ParseTrialRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, guestTrial.StartTimestamp, merged.StartTimestamp)

	_, found, err = store.GetRaw(ctx, records.TrialKey(records.GuestUID))
	require.NoError(t, err)
	assert.False(t, found, "guest record should be removed after merge")
}

func TestAuthService_Login_ExistingRecordWins(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(&models.User{
		UID:          "uid-1",
		Username:     "testuser",
		PasswordHash: hashed,
		Role:         "user",
	}, nil).Once()

	jwtMock := new(JwtMakerMock)
	jwtMock.On("GenerateToken", "testuser", "user", "uid-1").Return("jwt-token", nil).Once()

	userTrial := &entitlement.TrialRecord{StartTimestamp: 1000}
	guestTrial := &entitlement.TrialRecord{StartTimestamp: 2000}
	require.NoError(t, store.Set(ctx, records.TrialKey("uid-1"), userTrial))
	require.NoError(t, store.Set(ctx, records.TrialKey(records.GuestUID), guestTrial))

	svc := services.NewAuthService(repo, store, jwtMock, discardLogger())

	_, _, _, err = svc.Login(ctx, "testuser", "password123")
	require.NoError(t, err)

	raw, found, err := store.GetRaw(ctx, records.TrialKey("uid-1"))
	require.NoError(t, err)
	require.True(t, found)

	kept, err := entitlement.ParseTrialRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), kept.StartTimestamp, "user's own record must not be overwritten")
}

func TestAuthService_ValidateToken(t *testing.T) {
	repo := new(UserRepoMock)
	jwtMock := new(JwtMakerMock)
	jwtMock.On("ParseToken", "valid-token").Return(&customjwt.CustomClaims{
		Username: "testuser",
		Role:     "admin",
		UserUID:  "uid-1",
	}, nil).Once()

	svc := services.NewAuthService(repo, setupStore(t), jwtMock, discardLogger())

	user, role, ok, err := svc.ValidateToken(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "admin", role)
	assert.Equal(t, "uid-1", user.UID)
}
