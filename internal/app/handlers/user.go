package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/go-chi/chi/v5"
)

// UpdateUserRequest — частичное обновление профиля: nil-поля не трогаются
type UpdateUserRequest struct {
	FirstName   *string `json:"fname"`
	LastName    *string `json:"lname"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,numeric,len=11"`
}

// ListUsersHandler обрабатывает GET /api/users — только для администраторов
func ListUsersHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := userService.ListUsers(r.Context())
		if err != nil {
			logger.Error("failed to list users", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Users", nil)
			return
		}
		respond(w, http.StatusOK, "Users retrieved successfully", false, "Users", users)
	}
}

// GetUserHandler обрабатывает GET /api/users/{userId}
func GetUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		user, err := userService.GetUserByID(r.Context(), userID)
		if err != nil {
			logger.Error("failed to get user", slog.String("user_id", userID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "User", nil)
			return
		}
		respond(w, http.StatusOK, "User retrieved successfully", false, "User", user)
	}
}

// UpdateUserHandler обрабатывает PUT /api/users/{userId}
func UpdateUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateUserHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		var req UpdateUserRequest
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

		user, err := userService.UpdateUser(r.Context(), userID, service.UserPatch{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			logger.Error("failed to update user", slog.String("user_id", userID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "User", nil)
			return
		}
		respond(w, http.StatusOK, "User updated successfully", false, "User", user)
	}
}

// DeleteUserHandler обрабатывает DELETE /api/users/{userId} — только для администраторов
func DeleteUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")

		if err := userService.DeleteUser(r.Context(), userID); err != nil {
			logger.Error("failed to delete user", slog.String("user_id", userID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "User deleted successfully", false, "", nil)
	}
}
