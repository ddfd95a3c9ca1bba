// Package banner реализует HTTP-обработчик баннера обратного отсчета
// пробного периода.
//
// Handler возвращает оставшееся время пробного периода, разложенное
// на дни, часы и минуты, либо признак истечения. Страница опрашивает
// эту конечную точку раз в минуту.
package banner

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	trialservice "github.com/magabrotheeeer/movieflix-backend/internal/services/trial"
)

// Handler обрабатывает запросы баннера обратного отсчета.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пробного периода
}

// Service описывает интерфейс бизнес-логики пробного периода.
type Service interface {
	Banner(ctx context.Context, userUID string) (*trialservice.Banner, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить состояние баннера пробного периода
// @Description Возвращает обратный отсчет пробного периода в днях, часах и минутах.
// @Tags Trial
// @Produce  json
// @Success 200 {object} map[string]any "Состояние баннера"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пробный период не активировался"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trial/banner [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.banner"
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

	banner, err := h.service.Banner(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, trialservice.ErrNoTrial) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no trial record"))
			return
		}
		log.Error("failed to load banner", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load banner"))
		return
	}

	render.JSON(w, r, response.OKWithData(banner))
}
