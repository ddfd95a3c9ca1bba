package movieflix

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/movieflix-backend/internal/config"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/movieflix-backend/internal/migrations"
	"github.com/magabrotheeeer/movieflix-backend/internal/moviemeta"
	adminservice "github.com/magabrotheeeer/movieflix-backend/internal/services/admin"
	authservice "github.com/magabrotheeeer/movieflix-backend/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/movieflix-backend/internal/services/catalog"
	entitlementservice "github.com/magabrotheeeer/movieflix-backend/internal/services/entitlement"
	historyservice "github.com/magabrotheeeer/movieflix-backend/internal/services/history"
	mylistservice "github.com/magabrotheeeer/movieflix-backend/internal/services/mylist"
	profileservice "github.com/magabrotheeeer/movieflix-backend/internal/services/profile"
	subservice "github.com/magabrotheeeer/movieflix-backend/internal/services/subscription"
	testimonialservice "github.com/magabrotheeeer/movieflix-backend/internal/services/testimonial"
	trialservice "github.com/magabrotheeeer/movieflix-backend/internal/services/trial"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/records"
	"github.com/magabrotheeeer/movieflix-backend/internal/storage/repository"
)

// App представляет основное HTTP-приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	store  *records.Store
}

// New собирает приложение: подключает хранилища, прогоняет миграции
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	store, err := records.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	metaClient := moviemeta.NewClient(cfg.MovieAPIURL, cfg.MovieAPIKey, cfg.MovieAPITimeout)

	services := &Services{
		Auth:        authservice.NewAuthService(db, store, jwtMaker, logger),
		Entitlement: entitlementservice.NewEntitlementService(store, db, logger),
		Trial:       trialservice.NewTrialService(store, logger),
		Subs:        subservice.NewSubscriptionService(store, db, logger),
		Catalog:     catalogservice.NewCatalogService(metaClient, cfg.CatalogCacheTTL, logger),
		MyList:      mylistservice.NewMyListService(db, logger),
		History:     historyservice.NewHistoryService(db, logger),
		Profiles:    profileservice.NewProfileService(db, logger),
		Admin:       adminservice.NewAdminService(db, logger),
		Testimonial: testimonialservice.NewTestimonialService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		store:  store,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по сигналу контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
