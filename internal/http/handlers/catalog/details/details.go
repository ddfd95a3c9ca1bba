// Package details реализует HTTP-обработчик карточки фильма.
//
// Handler извлекает идентификатор фильма из URL-параметров и возвращает
// расширенную карточку вместе с рекомендациями похожих фильмов.
package details

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/moviemeta"
)

// Handler обрабатывает запросы карточки фильма.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога фильмов
}

// Service описывает интерфейс каталога фильмов.
type Service interface {
	Details(ctx context.Context, movieID int64) (*moviemeta.MovieDetails, *moviemeta.MoviePage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить карточку фильма
// @Description Возвращает расширенную карточку фильма и рекомендации.
// @Tags Catalog
// @Produce  json
// @Param id path int true "Идентификатор фильма"
// @Success 200 {object} map[string]any "Карточка и рекомендации"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 502 {object} response.ErrorResponse "Сторонний каталог недоступен"
// @Router /catalog/movies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.details"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movieID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || movieID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	details, recommendations, err := h.service.Details(r.Context(), movieID)
	if err != nil {
		log.Error("failed to load movie details", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("movie catalog unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"movie":           details,
		"recommendations": recommendations.Results,
	}))
}
