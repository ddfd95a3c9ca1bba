// Package services содержит бизнес-логику отзывов на лендинге.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// TestimonialRepository определяет методы для работы с отзывами в хранилище.
type TestimonialRepository interface {
	// CreateTestimonial сохраняет отзыв и возвращает его ID.
	CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error)
	// ListTestimonials возвращает отзывы, свежие первыми.
	ListTestimonials(ctx context.Context, limit, offset int) ([]*models.Testimonial, error)
}

// TestimonialService реализует операции с отзывами.
type TestimonialService struct {
	repo TestimonialRepository
	log  *slog.Logger
}

// NewTestimonialService создает новый экземпляр TestimonialService.
func NewTestimonialService(repo TestimonialRepository, log *slog.Logger) *TestimonialService {
	return &TestimonialService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет отзыв от имени пользователя.
func (s *TestimonialService) Create(ctx context.Context, author string, req models.DummyTestimonial) (int, error) {
	id, err := s.repo.CreateTestimonial(ctx, models.Testimonial{
		Author: author,
		Quote:  req.Quote,
		Rating: req.Rating,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created testimonial", slog.Int("id", id))
	return id, nil
}

// List возвращает отзывы с пагинацией.
func (s *TestimonialService) List(ctx context.Context, limit, offset int) ([]*models.Testimonial, error) {
	return s.repo.ListTestimonials(ctx, limit, offset)
}
