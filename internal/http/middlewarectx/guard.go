package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/metrics"
)

// EntitlementService описывает интерфейс вычислителя права доступа.
type EntitlementService interface {
	Check(ctx context.Context, userUID string) (entitlement.Decision, error)
}

// EntitlementGuardMiddleware охраняет страницы просмотра.
// Неаутентифицированный запрос перенаправляется на страницу входа,
// запрос без права доступа — на страницу подписки с пометкой blocked.
// Исходный путь передается в параметре from, чтобы после входа
// или оплаты вернуть пользователя обратно.
func EntitlementGuardMiddleware(log *slog.Logger, entService EntitlementService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "guard.EntitlementGuardMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			from := url.QueryEscape(r.URL.RequestURI())

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Info("unauthenticated watch attempt")
				metrics.GuardRedirects.WithLabelValues("login").Inc()
				http.Redirect(w, r, "/login?from="+from, http.StatusFound)
				return
			}

			decision, err := entService.Check(r.Context(), userUID)
			if err != nil {
				log.Error("entitlement check failed", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !decision.Allowed {
				log.Info("watch access denied", slog.String("user_uid", userUID))
				metrics.GuardRedirects.WithLabelValues("subscription").Inc()
				http.Redirect(w, r, "/subscription?blocked=true&from="+from, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
