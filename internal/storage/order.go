package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrderTx вставляет новый заказ (total_amount = 0, is_complete = false) внутри транзакции.
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	// GetCurrentOrder возвращает самый свежий незавершённый заказ пользователя.
	GetCurrentOrder(ctx context.Context, userID string) (*models.Order, error)
	UpdateAddress(ctx context.Context, orderID, address string) (*models.Order, error)
	// RecalculateTotalTx пересчитывает total_amount как сумму quantity * od_price по всем позициям.
	// Всегда полный пересчёт из позиций, без инкрементальных поправок.
	RecalculateTotalTx(ctx context.Context, tx *sql.Tx, orderID string) error
	MarkCompleteTx(ctx context.Context, tx *sql.Tx, orderID string) error
	DeleteOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "o_id, user_id, order_date, promised_date, address, total_amount, is_complete"

func scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}
	if err := row.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.PromisedDate, &order.Address, &order.TotalAmount, &order.IsComplete); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `INSERT INTO orders (o_id, user_id, order_date, promised_date, address, total_amount, is_complete)
	          VALUES ($1, $2, $3, $4, $5, 0, false)`
	_, err := tx.ExecContext(ctx, query, order.ID, order.UserID, order.OrderDate, order.PromisedDate, order.Address)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE o_id = $1", id)
	return scanOrder(row)
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE user_id = $1 ORDER BY order_date DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.PromisedDate, &order.Address, &order.TotalAmount, &order.IsComplete); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetCurrentOrder(ctx context.Context, userID string) (*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE user_id = $1 AND is_complete = false ORDER BY order_date DESC LIMIT 1"
	row := r.db.QueryRowContext(ctx, query, userID)
	return scanOrder(row)
}

func (r *orderRepository) UpdateAddress(ctx context.Context, orderID, address string) (*models.Order, error) {
	query := "UPDATE orders SET address = $1 WHERE o_id = $2 RETURNING " + orderColumns
	row := r.db.QueryRowContext(ctx, query, address, orderID)
	return scanOrder(row)
}

func (r *orderRepository) RecalculateTotalTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	query := `UPDATE orders
	          SET total_amount = COALESCE((SELECT SUM(quantity * od_price) FROM order_details WHERE order_id = $1), 0)
	          WHERE o_id = $1`
	res, err := tx.ExecContext(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("failed to recalculate order total: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) MarkCompleteTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	res, err := tx.ExecContext(ctx, "UPDATE orders SET is_complete = true WHERE o_id = $1", orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE o_id = $1", orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
