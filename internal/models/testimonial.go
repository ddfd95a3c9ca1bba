package models

import "time"

// Testimonial отзыв пользователя, отображаемый на лендинге.
type Testimonial struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyTestimonial используется для приёма данных из JSON-запроса.
type DummyTestimonial struct {
	Quote  string `json:"quote" validate:"required,min=3,max=500"` // Текст отзыва
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`  // Оценка от 1 до 5
}
