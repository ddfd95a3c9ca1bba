package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/movieflix-backend/internal/models"
)

// CreateTestimonial сохраняет отзыв и возвращает его ID.
func (s *Storage) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	const op = "storage.CreateTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO testimonials (author, quote, rating)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		t.Author, t.Quote, t.Rating).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListTestimonials возвращает отзывы, свежие первыми.
func (s *Storage) ListTestimonials(ctx context.Context, limit, offset int) ([]*models.Testimonial, error) {
	const op = "storage.ListTestimonials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author, quote, rating, created_at
			  FROM testimonials
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err = rows.Scan(&t.ID, &t.Author, &t.Quote, &t.Rating, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
