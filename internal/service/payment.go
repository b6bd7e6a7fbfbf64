package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/google/uuid"
)

var ErrOrderCompleted = errors.New("order already completed")

type PaymentService interface {
	CreatePayment(ctx context.Context, orderID string, amount float64, method string) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, orderID, paymentID, status string) (*models.Payment, error)
}

type paymentService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	paymentRepo storage.PaymentStorage
}

func NewPaymentService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, paymentRepo storage.PaymentStorage) PaymentService {
	return &paymentService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// CreatePayment регистрирует платёж по незавершённому заказу со статусом PENDING.
func (s *paymentService) CreatePayment(ctx context.Context, orderID string, amount float64, method string) (*models.Payment, error) {
	const op = "service.PaymentService.CreatePayment"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))
	logger.Info("creating payment")

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		logger.Error("failed to get order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get order: %w", op, err)
	}
	if order.IsComplete {
		logger.Warn("order already completed")
		return nil, fmt.Errorf("%s: %w", op, ErrOrderCompleted)
	}

	payment := &models.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Amount:  amount,
		Date:    time.Now().UTC(),
		Method:  method,
		Status:  models.PaymentStatusPending,
	}
	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		logger.Error("failed to create payment", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create payment: %w", op, err)
	}

	logger.Info("payment created", slog.String("paymentID", payment.ID))
	return payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	const op = "service.PaymentService.GetPaymentByID"
	payment, err := s.paymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payment, nil
}

func (s *paymentService) ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error) {
	const op = "service.PaymentService.ListByOrder"
	payments, err := s.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// UpdateStatus меняет статус платежа. Переход в COMPLETED дополнительно помечает заказ
// завершённым, обе записи обновляются в одной транзакции — это единственный путь,
// которым заказ становится завершённым.
func (s *paymentService) UpdateStatus(ctx context.Context, orderID, paymentID, status string) (*models.Payment, error) {
	const op = "service.PaymentService.UpdateStatus"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID), slog.String("paymentID", paymentID), slog.String("status", status))
	logger.Info("starting payment status transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	payment, err := s.paymentRepo.UpdateStatusTx(ctx, tx, paymentID, status)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to update payment status", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update payment status: %w", op, err)
	}

	if status == models.PaymentStatusCompleted {
		if err := s.orderRepo.MarkCompleteTx(ctx, tx, orderID); err != nil {
			rollback(logger, tx)
			logger.Error("failed to mark order complete", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to mark order complete: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("payment status updated successfully")
	return payment, nil
}
