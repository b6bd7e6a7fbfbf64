package models

// User представляет пользователя магазина
type User struct {
	ID          string `json:"u_id"`
	IsAdmin     bool   `json:"is_admin"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PassHash    []byte `json:"-"`
	PhoneNumber string `json:"phone_number"`
}
