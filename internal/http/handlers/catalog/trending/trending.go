// Package trending реализует HTTP-обработчик страницы популярных фильмов.
package trending

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/moviemeta"
)

// Handler обрабатывает запросы популярных фильмов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога фильмов
}

// Service описывает интерфейс каталога фильмов.
type Service interface {
	Trending(ctx context.Context, page int) (*moviemeta.MoviePage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить популярные фильмы
// @Description Возвращает страницу фильмов, популярных за последнюю неделю.
// @Tags Catalog
// @Produce  json
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Success 200 {object} map[string]any "Страница фильмов"
// @Failure 502 {object} response.ErrorResponse "Сторонний каталог недоступен"
// @Router /catalog/trending [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.trending"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.Trending(r.Context(), page)
	if err != nil {
		log.Error("failed to load trending movies", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("movie catalog unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
