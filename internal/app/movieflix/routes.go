// Package movieflix предоставляет маршруты основного приложения.
package movieflix

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/admin/listusers"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/admin/removeuser"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/admin/updaterole"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/catalog/details"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/catalog/discover"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/catalog/search"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/catalog/trending"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/entitlement/check"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/health"
	historyadd "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/history/add"
	historyclear "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/history/clear"
	historylist "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/history/list"
	mylistadd "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/mylist/add"
	mylistclear "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/mylist/clear"
	mylistlist "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/mylist/list"
	mylistremove "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/mylist/remove"
	planslist "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/plans/list"
	profileactivate "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/profile/activate"
	profilecreate "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/profile/create"
	profilelist "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/profile/list"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/subscription/payment"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/subscription/selectplan"
	testimonialcreate "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/testimonial/create"
	testimoniallist "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/testimonial/list"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/trial/banner"
	trialend "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/trial/end"
	trialstart "github.com/magabrotheeeer/movieflix-backend/internal/http/handlers/trial/start"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/middlewarectx"

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
)

// Services собирает сервисы, нужные для регистрации маршрутов.
type Services struct {
	Auth        *authservice.AuthService
	Entitlement *entitlementservice.EntitlementService
	Trial       *trialservice.TrialService
	Subs        *subservice.SubscriptionService
	Catalog     *catalogservice.CatalogService
	MyList      *mylistservice.MyListService
	History     *historyservice.HistoryService
	Profiles    *profileservice.ProfileService
	Admin       *adminservice.AdminService
	Testimonial *testimonialservice.TestimonialService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	detailsHandler := details.New(logger, s.Catalog)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/plans", planslist.New(logger).ServeHTTP)
		r.Get("/testimonials", testimoniallist.New(logger, s.Testimonial).ServeHTTP)

		r.Get("/catalog/trending", trending.New(logger, s.Catalog).ServeHTTP)
		r.Get("/catalog/search", search.New(logger, s.Catalog).ServeHTTP)
		r.Get("/catalog/discover", discover.New(logger, s.Catalog).ServeHTTP)
		r.Get("/catalog/movies/{id}", detailsHandler.ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/entitlement", check.New(logger, s.Entitlement).ServeHTTP)

			r.Post("/trial/start", trialstart.New(logger, s.Trial).ServeHTTP)
			r.Delete("/trial", trialend.New(logger, s.Trial).ServeHTTP)
			r.Get("/trial/banner", banner.New(logger, s.Trial).ServeHTTP)

			r.Post("/subscription/plan", selectplan.New(logger, s.Subs).ServeHTTP)
			r.Post("/subscription/payment", payment.New(logger, s.Subs).ServeHTTP)
			r.Get("/subscription", read.New(logger, s.Subs).ServeHTTP)
			r.Delete("/subscription", cancel.New(logger, s.Subs).ServeHTTP)

			r.Post("/testimonials", testimonialcreate.New(logger, s.Testimonial).ServeHTTP)

			// Страница просмотра и личные разделы закрыты проверкой прав доступа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.EntitlementGuardMiddleware(logger, s.Entitlement))

				r.Get("/watch/{id}", detailsHandler.ServeHTTP)

				r.Post("/mylist", mylistadd.New(logger, s.MyList).ServeHTTP)
				r.Get("/mylist", mylistlist.New(logger, s.MyList).ServeHTTP)
				r.Delete("/mylist/{id}", mylistremove.New(logger, s.MyList).ServeHTTP)
				r.Delete("/mylist", mylistclear.New(logger, s.MyList).ServeHTTP)

				r.Post("/history", historyadd.New(logger, s.History).ServeHTTP)
				r.Get("/history", historylist.New(logger, s.History).ServeHTTP)
				r.Delete("/history", historyclear.New(logger, s.History).ServeHTTP)

				r.Post("/profiles", profilecreate.New(logger, s.Profiles).ServeHTTP)
				r.Get("/profiles", profilelist.New(logger, s.Profiles).ServeHTTP)
				r.Post("/profiles/{id}/activate", profileactivate.New(logger, s.Profiles).ServeHTTP)
			})

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/admin/users", listusers.New(logger, s.Admin).ServeHTTP)
				r.Put("/admin/users/{uid}/role", updaterole.New(logger, s.Admin).ServeHTTP)
				r.Delete("/admin/users/{uid}", removeuser.New(logger, s.Admin).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
