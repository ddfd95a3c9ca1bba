package models

import "time"

// WatchlistItem элемент списка "моё" пользователя.
// Метаданные фильма денормализованы, чтобы список рендерился
// без похода в сторонний каталог.
type WatchlistItem struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"-"`
	MovieID    int64     `json:"movie_id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	GenreIDs   []int64   `json:"genre_ids"`
	AddedAt    time.Time `json:"added_at"`
}

// DummyWatchlistItem используется для приёма данных из JSON-запроса
// перед конвертацией в WatchlistItem.
type DummyWatchlistItem struct {
	MovieID    int64   `json:"movie_id" validate:"required,gt=0"` // Идентификатор фильма в каталоге
	Title      string  `json:"title" validate:"required"`         // Название
	PosterPath string  `json:"poster_path"`                       // Путь к постеру
	GenreIDs   []int64 `json:"genre_ids"`                         // Жанры
}

// HistoryItem элемент списка "продолжить просмотр".
type HistoryItem struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"-"`
	MovieID    int64     `json:"movie_id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	WatchedAt  time.Time `json:"watched_at"`
}

// DummyHistoryItem используется для приёма данных из JSON-запроса.
type DummyHistoryItem struct {
	MovieID    int64  `json:"movie_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required"`
	PosterPath string `json:"poster_path"`
}
