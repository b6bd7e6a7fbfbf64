package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Zain4391/SOLEMATE/internal/jwt-new/jwtmiddleware"
	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// requireSelfOrAdmin пускает либо самого пользователя из параметра {userId}, либо администратора
func requireSelfOrAdmin(w http.ResponseWriter, r *http.Request) (jwtmiddleware.AuthContext, bool) {
	auth, ok := jwtmiddleware.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "unauthorized", true, "", nil)
		return auth, false
	}
	if userID := chi.URLParam(r, "userId"); userID != "" && userID != auth.UserID && !auth.IsAdmin {
		respond(w, http.StatusForbidden, "forbidden", true, "", nil)
		return auth, false
	}
	return auth, true
}

// respond пишет JSON-конверт вида {"message": ..., "error": ..., "<Ключ>": ...}.
// payloadKey опционален: пустой ключ — конверт без полезной нагрузки.
func respond(w http.ResponseWriter, status int, message string, isError bool, payloadKey string, payload any) {
	body := map[string]any{
		"message": message,
		"error":   isError,
	}
	if payloadKey != "" {
		body[payloadKey] = payload
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFromError переводит ошибку сервисного слоя в HTTP-статус.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrSizeNotFound),
		errors.Is(err, storage.ErrCategoryNotFound),
		errors.Is(err, storage.ErrImageNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrOrderDetailNotFound),
		errors.Is(err, storage.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInsufficientStock),
		errors.Is(err, storage.ErrEmailTaken),
		errors.Is(err, service.ErrEmptyAddress),
		errors.Is(err, service.ErrOrderCompleted):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
