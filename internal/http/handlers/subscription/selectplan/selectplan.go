// Package selectplan реализует HTTP-обработчик выбора тарифного плана.
//
// Handler принимает имя плана и цикл списания, фиксирует выбор через
// бизнес-логику и возвращает запись о выбранном плане. С момента выбора
// начинается льготное окно доступа до оплаты.
package selectplan

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на выбор тарифного плана.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Request данные выбора тарифного плана.
type Request struct {
	Plan         string `json:"plan" validate:"required,oneof=basic standard premium"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
}

// Service описывает интерфейс бизнес-логики выбора плана.
type Service interface {
	SelectPlan(ctx context.Context, userUID, planName, billingCycle string) (*entitlement.SelectedPlanRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выбрать тарифный план
// @Description Фиксирует выбранный план до оплаты и открывает льготное окно доступа.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Param request body Request true "Выбранный план"
// @Success 200 {object} map[string]any "Запись о выбранном плане"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/select [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.selectplan"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rec, err := h.service.SelectPlan(r.Context(), userUID, req.Plan, req.BillingCycle)
	if err != nil {
		log.Error("failed to select plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not select plan"))
		return
	}

	log.Info("plan selected",
		slog.String("user_uid", userUID), slog.String("plan", req.Plan))
	render.JSON(w, r, response.OKWithData(rec))
}
