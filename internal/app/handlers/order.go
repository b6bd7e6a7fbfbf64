package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreateOrderRequest — тело запроса создания заказа с первой позицией
type CreateOrderRequest struct {
	OrderDate    string `json:"orderDate" validate:"required"`
	PromisedDate string `json:"promisedDate" validate:"required"`
	Address      string `json:"address" validate:"required"`
	ProductID    string `json:"p_id" validate:"required"`
	Size         string `json:"size" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateAddressRequest — тело запроса смены адреса доставки
type UpdateAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

// parseDate принимает дату в RFC3339 либо как YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// CreateOrderHandler обрабатывает POST /api/users/{userId}/order
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Orders", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "All fields are required", true, "Orders", nil)
			return
		}

		orderDate, err := parseDate(req.OrderDate)
		if err != nil {
			respond(w, http.StatusBadRequest, "invalid orderDate", true, "Orders", nil)
			return
		}
		promisedDate, err := parseDate(req.PromisedDate)
		if err != nil {
			respond(w, http.StatusBadRequest, "invalid promisedDate", true, "Orders", nil)
			return
		}

		order, err := orderService.CreateOrder(r.Context(), userID, service.CreateOrderInput{
			OrderDate:    orderDate,
			PromisedDate: promisedDate,
			Address:      req.Address,
			ProductID:    req.ProductID,
			Size:         req.Size,
			Quantity:     req.Quantity,
		})
		if err != nil {
			logger.Error("failed to create order", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Orders", nil)
			return
		}

		logger.Info("order created", slog.String("order_id", order.ID), slog.String("user_id", userID))
		respond(w, http.StatusCreated, "Order created successfully", false, "Orders", order)
	}
}

// GetOrdersHandler обрабатывает GET /api/users/{userId}/order — все заказы пользователя
func GetOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrdersHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		orders, err := orderService.GetOrders(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Orders", nil)
			return
		}
		respond(w, http.StatusOK, "Orders retrieved successfully", false, "Orders", orders)
	}
}

// GetCurrentOrderHandler обрабатывает GET /api/users/{userId}/order/current —
// последний незавершённый заказ пользователя
func GetCurrentOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCurrentOrderHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		userID := chi.URLParam(r, "userId")

		order, err := orderService.GetCurrentOrder(r.Context(), userID)
		if err != nil {
			logger.Warn("no current order", slog.String("user_id", userID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Orders", nil)
			return
		}
		respond(w, http.StatusOK, "Current order retrieved successfully", false, "Orders", order)
	}
}

// GetOrderByIDHandler обрабатывает GET /api/users/{userId}/order/{orderId}
func GetOrderByIDHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderByIDHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		order, err := orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			logger.Error("failed to get order", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Orders", nil)
			return
		}
		respond(w, http.StatusOK, "Order retrieved successfully", false, "Orders", order)
	}
}

// UpdateAddressHandler обрабатывает PUT /api/users/{userId}/order/{orderId}
func UpdateAddressHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateAddressHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		var req UpdateAddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Orders", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Address is required", true, "Orders", nil)
			return
		}

		order, err := orderService.UpdateAddress(r.Context(), orderID, req.Address)
		if err != nil {
			logger.Error("failed to update address", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Orders", nil)
			return
		}
		respond(w, http.StatusOK, "Address updated successfully", false, "Orders", order)
	}
}

// DeleteOrderHandler обрабатывает DELETE /api/users/{userId}/order/{orderId} —
// удаляет заказ вместе со всеми позициями
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		if err := orderService.DeleteOrder(r.Context(), orderID); err != nil {
			logger.Error("failed to delete order", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Order deleted successfully", false, "", nil)
	}
}
