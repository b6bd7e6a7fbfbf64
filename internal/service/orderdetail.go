package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/google/uuid"
)

// AddDetailInput — данные для добавления позиции в существующий заказ.
type AddDetailInput struct {
	ProductID string
	Size      string
	Quantity  int
}

// DetailPatch — частичное обновление позиции: nil-поля не трогаются.
// Остаток при обновлении количества повторно не проверяется.
type DetailPatch struct {
	Quantity *int
	Price    *float64
}

type OrderDetailService interface {
	AddDetail(ctx context.Context, orderID, userID string, in AddDetailInput) (*models.OrderDetail, error)
	GetDetailByID(ctx context.Context, odID string) (*models.OrderDetail, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]*models.OrderDetail, error)
	UpdateDetail(ctx context.Context, odID string, patch DetailPatch) (*models.OrderDetail, error)
	DeleteDetail(ctx context.Context, odID string) error
}

type orderDetailService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	detailRepo  storage.OrderDetailStorage
	productRepo storage.ProductStorage
	sizeRepo    storage.SizeStorage
}

func NewOrderDetailService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, detailRepo storage.OrderDetailStorage, productRepo storage.ProductStorage, sizeRepo storage.SizeStorage) OrderDetailService {
	return &orderDetailService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
	}
}

// insertDetailTx — общий шаг добавления позиции для создания заказа и пополнения корзины:
// фиксация цены товара, блокировка строки остатка, проверка количества,
// вставка позиции, пересчёт суммы заказа, списание остатка.
// Откатывает транзакцию при любой ошибке.
func insertDetailTx(
	ctx context.Context,
	tx *sql.Tx,
	logger *slog.Logger,
	orderRepo storage.OrderStorage,
	detailRepo storage.OrderDetailStorage,
	productRepo storage.ProductStorage,
	sizeRepo storage.SizeStorage,
	orderID, userID, productID, size string,
	quantity int,
) (*models.OrderDetail, error) {
	product, err := productRepo.GetProductTx(ctx, tx, productID)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get product", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	sizeRow, err := sizeRepo.LockSizeTx(ctx, tx, productID, size)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to lock size row", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get size: %w", err)
	}

	if quantity > sizeRow.Stock {
		rollback(logger, tx)
		logger.Warn("insufficient stock", slog.Int("requested", quantity), slog.Int("available", sizeRow.Stock))
		return nil, fmt.Errorf("quantity %d exceeds stock %d: %w", quantity, sizeRow.Stock, storage.ErrInsufficientStock)
	}

	detail := &models.OrderDetail{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		Price:     product.Price, // снимок цены на момент добавления
		UserID:    userID,
	}
	if err := detailRepo.CreateDetailTx(ctx, tx, detail); err != nil {
		rollback(logger, tx)
		logger.Error("failed to create order detail", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create order detail: %w", err)
	}

	if err := orderRepo.RecalculateTotalTx(ctx, tx, orderID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to recalculate order total", slog.Any("error", err))
		return nil, fmt.Errorf("failed to recalculate order total: %w", err)
	}

	if err := sizeRepo.DecrementStockTx(ctx, tx, productID, size, quantity); err != nil {
		rollback(logger, tx)
		logger.Error("failed to decrement stock", slog.Any("error", err))
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return detail, nil
}

// AddDetail добавляет позицию в заказ; проверка остатка и пересчёт суммы — в одной транзакции.
func (s *orderDetailService) AddDetail(ctx context.Context, orderID, userID string, in AddDetailInput) (*models.OrderDetail, error) {
	const op = "service.OrderDetailService.AddDetail"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID), slog.String("productID", in.ProductID))
	logger.Info("starting add detail transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	detail, err := insertDetailTx(ctx, tx, logger, s.orderRepo, s.detailRepo, s.productRepo, s.sizeRepo, orderID, userID, in.ProductID, in.Size, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order detail added successfully", slog.String("odID", detail.ID))
	return detail, nil
}

func (s *orderDetailService) GetDetailByID(ctx context.Context, odID string) (*models.OrderDetail, error) {
	const op = "service.OrderDetailService.GetDetailByID"
	detail, err := s.detailRepo.GetDetailByID(ctx, odID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return detail, nil
}

func (s *orderDetailService) ListByOrder(ctx context.Context, orderID string) ([]*models.OrderDetail, error) {
	const op = "service.OrderDetailService.ListByOrder"
	details, err := s.detailRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return details, nil
}

func (s *orderDetailService) ListByUser(ctx context.Context, userID string) ([]*models.OrderDetail, error) {
	const op = "service.OrderDetailService.ListByUser"
	details, err := s.detailRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return details, nil
}

// UpdateDetail накладывает патч на свежепрочитанную строку внутри той же транзакции,
// затем пересчитывает сумму родительского заказа.
func (s *orderDetailService) UpdateDetail(ctx context.Context, odID string, patch DetailPatch) (*models.OrderDetail, error) {
	const op = "service.OrderDetailService.UpdateDetail"
	logger := s.log.With(slog.String("op", op), slog.String("odID", odID))
	logger.Info("starting detail update transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	detail, err := s.detailRepo.GetDetailTx(ctx, tx, odID)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get order detail", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get order detail: %w", op, err)
	}

	if patch.Quantity != nil {
		detail.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		detail.Price = *patch.Price
	}

	if err := s.detailRepo.UpdateDetailTx(ctx, tx, detail); err != nil {
		rollback(logger, tx)
		logger.Error("failed to update order detail", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update order detail: %w", op, err)
	}

	if err := s.orderRepo.RecalculateTotalTx(ctx, tx, detail.OrderID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to recalculate order total", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to recalculate order total: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order detail updated successfully")
	return detail, nil
}

// DeleteDetail удаляет позицию и пересчитывает сумму заказа (0, если позиций не осталось).
func (s *orderDetailService) DeleteDetail(ctx context.Context, odID string) error {
	const op = "service.OrderDetailService.DeleteDetail"
	logger := s.log.With(slog.String("op", op), slog.String("odID", odID))
	logger.Info("starting detail deletion transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// идентификатор заказа нужен до удаления строки
	detail, err := s.detailRepo.GetDetailTx(ctx, tx, odID)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get order detail", slog.Any("error", err))
		return fmt.Errorf("%s: failed to get order detail: %w", op, err)
	}

	if err := s.detailRepo.DeleteDetailTx(ctx, tx, odID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to delete order detail", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete order detail: %w", op, err)
	}

	if err := s.orderRepo.RecalculateTotalTx(ctx, tx, detail.OrderID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to recalculate order total", slog.Any("error", err))
		return fmt.Errorf("%s: failed to recalculate order total: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order detail deleted successfully")
	return nil
}
