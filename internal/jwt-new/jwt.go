package security

import (
	"fmt"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

// NewToken генерирует JWT для пользователя с заданным временем жизни.
// Секрет передаётся явно, без чтения глобального состояния.
func NewToken(secret []byte, user *models.User, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("signing secret is empty")
	}
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
