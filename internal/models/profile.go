package models

import "time"

// Profile профиль просмотра внутри одной учетной записи.
// Активным может быть только один профиль пользователя.
type Profile struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"-"`
	Name      string    `json:"name"`
	IsKids    bool      `json:"is_kids"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyProfile используется для приёма данных из JSON-запроса.
type DummyProfile struct {
	Name   string `json:"name" validate:"required,min=1,max=30"` // Имя профиля
	IsKids bool   `json:"is_kids"`                               // Детский профиль
}
