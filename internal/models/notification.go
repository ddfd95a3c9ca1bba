package models

import "time"

// TrialExpiryNotice сообщение для воркера-отправителя о скором
// окончании пробного периода пользователя.
type TrialExpiryNotice struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	EndsAt   time.Time `json:"ends_at"`
}
