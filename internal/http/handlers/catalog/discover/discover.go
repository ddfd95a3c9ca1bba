// Package discover реализует HTTP-обработчик подборки фильмов по жанру.
package discover

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

// Handler обрабатывает запросы подборки по жанру.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога фильмов
}

// Service описывает интерфейс каталога фильмов.
type Service interface {
	Discover(ctx context.Context, genreID int64, page int) (*moviemeta.MoviePage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подборку фильмов по жанру
// @Description Возвращает страницу фильмов выбранного жанра, отсортированных по популярности.
// @Tags Catalog
// @Produce  json
// @Param genre query int false "Идентификатор жанра"
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Success 200 {object} map[string]any "Страница фильмов"
// @Failure 502 {object} response.ErrorResponse "Сторонний каталог недоступен"
// @Router /catalog/discover [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.discover"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	genreID, _ := strconv.ParseInt(r.URL.Query().Get("genre"), 10, 64)
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.Discover(r.Context(), genreID, page)
	if err != nil {
		log.Error("failed to discover movies", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("movie catalog unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
