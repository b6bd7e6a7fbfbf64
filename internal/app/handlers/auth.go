package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/jwt-new/jwtmiddleware"
	"github.com/Zain4391/SOLEMATE/internal/service"
)

// SignUpRequest — тело запроса регистрации с тегами валидации
type SignUpRequest struct {
	FirstName   string `json:"fname" validate:"required"`
	LastName    string `json:"lname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric,len=11"`
}

// LoginRequest — тело запроса входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// setTokenCookie кладёт токен сессии в httpOnly-куку
func setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtmiddleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true, // недоступна из JS
		SameSite: http.SameSiteLaxMode,
	})
}

// SignUpHandler обрабатывает POST /api/auth/signup
func SignUpHandler(log *slog.Logger, authService service.AuthServiceInterface, cookieTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SignUpHandler"
		logger := log.With(slog.String("op", op))

		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "User", nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "validation error: "+err.Error(), true, "User", nil)
			return
		}

		user, token, err := authService.SignUp(r.Context(), service.SignUpInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			logger.Error("signup failed", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "User", nil)
			return
		}

		setTokenCookie(w, token, cookieTTL)
		respond(w, http.StatusOK, "Signup successful", false, "User", user)
	}
}

// LoginHandler обрабатывает POST /api/auth/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface, cookieTTL time.Duration) http.HandlerFunc {
	return loginHandler(log, cookieTTL, authService.Login, "handlers.LoginHandler")
}

// AdminLoginHandler обрабатывает POST /api/auth/admin/login — вход только для администраторов
func AdminLoginHandler(log *slog.Logger, authService service.AuthServiceInterface, cookieTTL time.Duration) http.HandlerFunc {
	return loginHandler(log, cookieTTL, authService.AdminLogin, "handlers.AdminLoginHandler")
}

func loginHandler(log *slog.Logger, cookieTTL time.Duration, login func(ctx context.Context, email, password string) (*models.User, string, error), op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "User", nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "validation error", true, "User", nil)
			return
		}

		user, token, err := login(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("login failed", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "User", nil)
			return
		}

		setTokenCookie(w, token, cookieTTL)
		respond(w, http.StatusOK, "User logged in successfully", false, "User", user)
	}
}

// LogoutHandler обрабатывает POST /api/auth/logout — сбрасывает куку сессии
func LogoutHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     jwtmiddleware.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		respond(w, http.StatusOK, "Logged out successfully", false, "User", nil)
	}
}

// MeHandler обрабатывает GET /api/auth/me — возвращает личность из токена
func MeHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respond(w, http.StatusUnauthorized, "unauthorized", true, "", nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"userId":  auth.UserID,
			"isAdmin": auth.IsAdmin,
		})
	}
}
