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

var ErrEmptyAddress = errors.New("address is required")

// CreateOrderInput — данные для создания заказа с первой позицией.
type CreateOrderInput struct {
	OrderDate    time.Time
	PromisedDate time.Time
	Address      string
	ProductID    string
	Size         string
	Quantity     int
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error)
	GetOrders(ctx context.Context, userID string) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	GetCurrentOrder(ctx context.Context, userID string) (*models.Order, error)
	UpdateAddress(ctx context.Context, orderID, address string) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	detailRepo  storage.OrderDetailStorage
	productRepo storage.ProductStorage
	sizeRepo    storage.SizeStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, detailRepo storage.OrderDetailStorage, productRepo storage.ProductStorage, sizeRepo storage.SizeStorage) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
	}
}

// CreateOrder создает заказ вместе с первой позицией.
// Вся цепочка (заказ, проверка остатка, позиция, пересчёт суммы, списание остатка)
// выполняется в одной транзакции; любая ошибка откатывает всё.
func (s *orderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID), slog.String("productID", in.ProductID))
	logger.Info("starting order creation transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		UserID:       userID,
		OrderDate:    in.OrderDate,
		PromisedDate: in.PromisedDate,
		Address:      in.Address,
	}
	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		rollback(logger, tx)
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	detail, err := insertDetailTx(ctx, tx, logger, s.orderRepo, s.detailRepo, s.productRepo, s.sizeRepo, order.ID, userID, in.ProductID, in.Size, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	order.TotalAmount = float64(detail.Quantity) * detail.Price
	logger.Info("order created successfully", slog.String("orderID", order.ID))
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "service.OrderService.GetOrders"
	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "service.OrderService.GetOrderByID"
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// GetCurrentOrder возвращает самый свежий незавершённый заказ — он и есть корзина.
func (s *orderService) GetCurrentOrder(ctx context.Context, userID string) (*models.Order, error) {
	const op = "service.OrderService.GetCurrentOrder"
	order, err := s.orderRepo.GetCurrentOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) UpdateAddress(ctx context.Context, orderID, address string) (*models.Order, error) {
	const op = "service.OrderService.UpdateAddress"
	if address == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyAddress)
	}
	order, err := s.orderRepo.UpdateAddress(ctx, orderID, address)
	if err != nil {
		s.log.Error("failed to update address", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// DeleteOrder удаляет позиции заказа и сам заказ в одной транзакции.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	const op = "service.OrderService.DeleteOrder"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))
	logger.Info("starting order deletion transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.detailRepo.DeleteByOrderTx(ctx, tx, orderID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to delete order details", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete order details: %w", op, err)
	}

	if err := s.orderRepo.DeleteOrderTx(ctx, tx, orderID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order deleted successfully")
	return nil
}

func rollback(logger *slog.Logger, tx *sql.Tx) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}
