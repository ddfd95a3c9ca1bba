// Package search реализует HTTP-обработчик поиска фильмов по названию.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movieflix-backend/internal/http/response"
	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/moviemeta"
)

// Handler обрабатывает поисковые запросы.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога фильмов
}

// Service описывает интерфейс каталога фильмов.
type Service interface {
	Search(ctx context.Context, query string, page int) (*moviemeta.MoviePage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти фильмы по названию
// @Description Возвращает страницу результатов поиска в стороннем каталоге.
// @Tags Catalog
// @Produce  json
// @Param query query string true "Поисковый запрос"
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Success 200 {object} map[string]any "Страница результатов"
// @Failure 400 {object} response.ErrorResponse "Пустой запрос"
// @Failure 502 {object} response.ErrorResponse "Сторонний каталог недоступен"
// @Router /catalog/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query is required"))
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.Search(r.Context(), query, page)
	if err != nil {
		log.Error("failed to search movies", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("movie catalog unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
