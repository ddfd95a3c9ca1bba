// Package services содержит бизнес-логику каталога фильмов с кешированием
// ответов стороннего API в памяти процесса.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/magabrotheeeer/movieflix-backend/internal/lib/sl"
	"github.com/magabrotheeeer/movieflix-backend/internal/moviemeta"
)

// MetaClient описывает клиент стороннего каталога фильмов.
type MetaClient interface {
	Trending(ctx context.Context, page int) (*moviemeta.MoviePage, error)
	Discover(ctx context.Context, genreID int64, page int) (*moviemeta.MoviePage, error)
	Search(ctx context.Context, query string, page int) (*moviemeta.MoviePage, error)
	Details(ctx context.Context, movieID int64) (*moviemeta.MovieDetails, error)
	Recommendations(ctx context.Context, movieID int64) (*moviemeta.MoviePage, error)
}

// CatalogService проксирует сторонний каталог фильмов, кешируя страницы
// и карточки. Поисковые запросы не кешируются.
type CatalogService struct {
	client MetaClient
	cache  *gocache.Cache
	log    *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(client MetaClient, ttl time.Duration, log *slog.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
		log:    log,
	}
}

// Trending возвращает страницу популярных фильмов.
func (s *CatalogService) Trending(ctx context.Context, page int) (*moviemeta.MoviePage, error) {
	key := fmt.Sprintf("trending:%d", page)
	if cached, found := s.cache.Get(key); found {
		return cached.(*moviemeta.MoviePage), nil
	}

	result, err := s.client.Trending(ctx, page)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, result)
	return result, nil
}

// Discover возвращает страницу фильмов выбранного жанра.
func (s *CatalogService) Discover(ctx context.Context, genreID int64, page int) (*moviemeta.MoviePage, error) {
	key := fmt.Sprintf("discover:%d:%d", genreID, page)
	if cached, found := s.cache.Get(key); found {
		return cached.(*moviemeta.MoviePage), nil
	}

	result, err := s.client.Discover(ctx, genreID, page)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, result)
	return result, nil
}

// Search ищет фильмы по названию.
func (s *CatalogService) Search(ctx context.Context, query string, page int) (*moviemeta.MoviePage, error) {
	return s.client.Search(ctx, query, page)
}

// Details возвращает карточку фильма вместе с рекомендациями.
func (s *CatalogService) Details(ctx context.Context, movieID int64) (*moviemeta.MovieDetails, *moviemeta.MoviePage, error) {
	key := fmt.Sprintf("details:%d", movieID)
	if cached, found := s.cache.Get(key); found {
		pair := cached.(detailsPair)
		return pair.details, pair.recommendations, nil
	}

	details, err := s.client.Details(ctx, movieID)
	if err != nil {
		return nil, nil, err
	}

	recommendations, err := s.client.Recommendations(ctx, movieID)
	if err != nil {
		// рекомендации вторичны, карточка отдается и без них
		s.log.Warn("failed to load recommendations",
			slog.Int64("movie_id", movieID), sl.Err(err))
		recommendations = &moviemeta.MoviePage{}
	}

	s.cache.SetDefault(key, detailsPair{details: details, recommendations: recommendations})
	return details, recommendations, nil
}

type detailsPair struct {
	details         *moviemeta.MovieDetails
	recommendations *moviemeta.MoviePage
}
