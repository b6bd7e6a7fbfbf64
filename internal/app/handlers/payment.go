package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreatePaymentRequest — тело запроса создания платежа по заказу
type CreatePaymentRequest struct {
	Amount float64 `json:"paymentAmount" validate:"required,gt=0"`
	Method string  `json:"paymentMethod" validate:"required"`
}

// UpdatePaymentStatusRequest — тело запроса смены статуса платежа
type UpdatePaymentStatusRequest struct {
	Status string `json:"paymentStatus" validate:"required,oneof=PENDING COMPLETED FAILED"`
}

// CreatePaymentHandler обрабатывает POST /api/users/{userId}/order/{orderId}/payments.
// Платёж создаётся в статусе PENDING.
func CreatePaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreatePaymentHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		var req CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Payment", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "Payment amount and method are required", true, "Payment", nil)
			return
		}

		payment, err := paymentService.CreatePayment(r.Context(), orderID, req.Amount, req.Method)
		if err != nil {
			logger.Error("failed to create payment", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Payment", nil)
			return
		}

		logger.Info("payment created",
			slog.String("payment_id", payment.ID),
			slog.String("order_id", orderID),
			slog.String("status", payment.Status),
		)
		respond(w, http.StatusCreated, "Payment created successfully", false, "Payment", payment)
	}
}

// ListPaymentsHandler обрабатывает GET /api/users/{userId}/order/{orderId}/payments
func ListPaymentsHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListPaymentsHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")

		payments, err := paymentService.ListByOrder(r.Context(), orderID)
		if err != nil {
			logger.Error("failed to list payments", slog.String("order_id", orderID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Payments", nil)
			return
		}
		respond(w, http.StatusOK, "Payments retrieved successfully", false, "Payments", payments)
	}
}

// GetPaymentHandler обрабатывает GET /api/users/{userId}/order/{orderId}/payments/{paymentId}
func GetPaymentHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetPaymentHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		paymentID := chi.URLParam(r, "paymentId")

		payment, err := paymentService.GetPaymentByID(r.Context(), paymentID)
		if err != nil {
			logger.Error("failed to get payment", slog.String("payment_id", paymentID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Payment", nil)
			return
		}
		respond(w, http.StatusOK, "Payment retrieved successfully", false, "Payment", payment)
	}
}

// UpdatePaymentStatusHandler обрабатывает PUT /api/users/{userId}/order/{orderId}/payments/{paymentId}.
// Перевод в COMPLETED закрывает заказ.
func UpdatePaymentStatusHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdatePaymentStatusHandler"
		logger := log.With(slog.String("op", op))

		if _, ok := requireSelfOrAdmin(w, r); !ok {
			return
		}
		orderID := chi.URLParam(r, "orderId")
		paymentID := chi.URLParam(r, "paymentId")

		var req UpdatePaymentStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Payment", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Invalid payment status", true, "Payment", nil)
			return
		}

		payment, err := paymentService.UpdateStatus(r.Context(), orderID, paymentID, req.Status)
		if err != nil {
			logger.Error("failed to update payment status",
				slog.String("payment_id", paymentID),
				slog.Any("error", err),
			)
			respond(w, statusFromError(err), err.Error(), true, "Payment", nil)
			return
		}

		if payment.Status == models.PaymentStatusCompleted {
			logger.Info("order completed", slog.String("order_id", orderID), slog.String("payment_id", paymentID))
		}
		respond(w, http.StatusOK, "Payment status updated successfully", false, "Payment", payment)
	}
}
