// internal/domain/admin/entity.go
package admin

import "time"

type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    *string   `json:"first_name" db:"first_name"`
	LastName     *string   `json:"last_name" db:"last_name"`
	TelegramID   *string   `json:"telegram_id" db:"telegram_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Has2FA reports whether the admin has a Telegram delivery channel configured.
func (a *Admin) Has2FA() bool {
	return a.TelegramID != nil && *a.TelegramID != ""
}

// Info returns the public view of the admin, without the password hash.
func (a *Admin) Info() AdminInfo {
	return AdminInfo{
		ID:         a.ID,
		Username:   a.Username,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		TelegramID: a.TelegramID,
		CreatedAt:  a.CreatedAt,
	}
}

// AdminInfo represents public admin information
type AdminInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	TelegramID *string   `json:"telegram_id"`
	CreatedAt  time.Time `json:"created_at"`
}
