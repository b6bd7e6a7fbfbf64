package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/go-chi/chi/v5"
)

// AddDetailRequest — тело запроса добавления позиции в заказ
type AddDetailRequest struct {
	ProductID string `json:"p_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateDetailRequest — частичное обновление позиции: nil-поля не трогаются
type UpdateDetailRequest struct {
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
	Price    *float64 `json:"odPrice" validate:"omitempty,gt=0"`
}

// AddDetailHandler обрабатывает POST /api/users/{userId}/order/{orderId}/order_details
func AddDetailHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddDetailHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")
		orderID := chi.URLParam(r, "orderId")

		var req AddDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "OrderDetails", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "All fields are required", true, "OrderDetails", nil)
			return
		}

		detail, err := detailService.AddDetail(r.Context(), orderID, userID, service.AddDetailInput{
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
		})
		if err != nil {
			logger.Error("failed to add order detail", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "OrderDetails", nil)
			return
		}

		logger.Info("order detail added",
			slog.String("od_id", detail.ID),
			slog.String("order_id", orderID),
			slog.Int("quantity", detail.Quantity),
		)
		respond(w, http.StatusCreated, "Order detail added successfully", false, "OrderDetails", detail)
	}
}

// ListDetailsByOrderHandler обрабатывает GET /api/users/{userId}/order/{orderId}/order_details
func ListDetailsByOrderHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListDetailsByOrderHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		details, err := detailService.ListByOrder(r.Context(), orderID)
		if err != nil {
			logger.Error("failed to list order details", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "OrderDetails", nil)
			return
		}
		respond(w, http.StatusOK, "Order details retrieved successfully", false, "OrderDetails", details)
	}
}

// ListDetailsByUserHandler обрабатывает GET /api/users/{userId}/order_details —
// все позиции пользователя по всем заказам
func ListDetailsByUserHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListDetailsByUserHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		details, err := detailService.ListByUser(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list user order details", slog.String("user_id", userID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "OrderDetails", nil)
			return
		}
		respond(w, http.StatusOK, "Order details retrieved successfully", false, "OrderDetails", details)
	}
}

// GetDetailHandler обрабатывает GET /api/users/{userId}/order/{orderId}/order_details/{odId}
func GetDetailHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetDetailHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		odID := chi.URLParam(r, "odId")

		detail, err := detailService.GetDetailByID(r.Context(), odID)
		if err != nil {
			logger.Error("failed to get order detail", slog.String("od_id", odID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "OrderDetail", nil)
			return
		}
		respond(w, http.StatusOK, "Order detail retrieved successfully", false, "OrderDetail", detail)
	}
}

// UpdateDetailHandler обрабатывает PUT /api/users/{userId}/order/{orderId}/order_details/{odId}
func UpdateDetailHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateDetailHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		odID := chi.URLParam(r, "odId")

		var req UpdateDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "OrderDetail", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "validation error", true, "OrderDetail", nil)
			return
		}
		if req.Quantity == nil && req.Price == nil {
			respond(w, http.StatusBadRequest, "nothing to update", true, "OrderDetail", nil)
			return
		}

		detail, err := detailService.UpdateDetail(r.Context(), odID, service.DetailPatch{
			Quantity: req.Quantity,
			Price:    req.Price,
		})
		if err != nil {
			logger.Error("failed to update order detail", slog.String("od_id", odID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "OrderDetail", nil)
			return
		}
		respond(w, http.StatusOK, "Order detail updated successfully", false, "OrderDetail", detail)
	}
}

// DeleteDetailHandler обрабатывает DELETE /api/users/{userId}/order/{orderId}/order_details/{odId}
func DeleteDetailHandler(log *slog.Logger, detailService service.OrderDetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteDetailHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		odID := chi.URLParam(r, "odId")

		if err := detailService.DeleteDetail(r.Context(), odID); err != nil {
			logger.Error("failed to delete order detail", slog.String("od_id", odID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Order detail deleted successfully", false, "", nil)
	}
}
