// Package payment реализует HTTP-обработчик подтверждения оплаты подписки.
//
// Handler имитирует успешную оплату выбранного плана: активирует подписку
// и возвращает её запись. Интеграция с реальным платежным провайдером
// сознательно не выполняется.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	subservice "github.com/magabrotheeeer/movieflix-backend/internal/services/subscription"
)

// Handler управляет HTTP-запросами на подтверждение оплаты.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс активации подписки.
type Service interface {
	Activate(ctx context.Context, userUID string) (*entitlement.SubscriptionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату подписки
// @Description Активирует подписку по ранее выбранному плану.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} map[string]any "Запись подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "План не выбран"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.payment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rec, err := h.service.Activate(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, subservice.ErrNoSelectedPlan) {
			log.Info("payment without selected plan", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("no plan selected"))
			return
		}
		log.Error("failed to activate subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate subscription"))
		return
	}

	log.Info("subscription activated",
		slog.String("user_uid", userUID), slog.String("plan", rec.Plan))
	render.JSON(w, r, response.OKWithData(rec))
}
