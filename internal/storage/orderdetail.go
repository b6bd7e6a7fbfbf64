package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrOrderDetailNotFound = errors.New("order detail not found")

// OrderDetailStorage описывает методы для работы с позициями заказа.
type OrderDetailStorage interface {
	CreateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error
	GetDetailByID(ctx context.Context, id string) (*models.OrderDetail, error)
	// GetDetailTx читает позицию внутри транзакции обновления — merge идёт по свежей строке.
	GetDetailTx(ctx context.Context, tx *sql.Tx, id string) (*models.OrderDetail, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]*models.OrderDetail, error)
	UpdateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error
	DeleteDetailTx(ctx context.Context, tx *sql.Tx, id string) error
	DeleteByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error
}

type orderDetailRepository struct {
	db *sql.DB
}

func NewOrderDetailRepository(db *sql.DB) OrderDetailStorage {
	return &orderDetailRepository{db: db}
}

const detailColumns = "od_id, order_id, product_id, size, quantity, od_price, user_id"

func scanDetail(row *sql.Row) (*models.OrderDetail, error) {
	d := &models.OrderDetail{}
	if err := row.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Size, &d.Quantity, &d.Price, &d.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderDetailNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *orderDetailRepository) CreateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error {
	query := `INSERT INTO order_details (od_id, order_id, product_id, size, quantity, od_price, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.ExecContext(ctx, query, d.ID, d.OrderID, d.ProductID, d.Size, d.Quantity, d.Price, d.UserID)
	if err != nil {
		return fmt.Errorf("failed to create order detail: %w", err)
	}
	return nil
}

func (r *orderDetailRepository) GetDetailByID(ctx context.Context, id string) (*models.OrderDetail, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+detailColumns+" FROM order_details WHERE od_id = $1", id)
	return scanDetail(row)
}

func (r *orderDetailRepository) GetDetailTx(ctx context.Context, tx *sql.Tx, id string) (*models.OrderDetail, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+detailColumns+" FROM order_details WHERE od_id = $1", id)
	return scanDetail(row)
}

func (r *orderDetailRepository) listBy(ctx context.Context, column, value string) ([]*models.OrderDetail, error) {
	query := "SELECT " + detailColumns + " FROM order_details WHERE " + column + " = $1"
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query order details: %w", err)
	}
	defer rows.Close()

	var details []*models.OrderDetail
	for rows.Next() {
		d := &models.OrderDetail{}
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Size, &d.Quantity, &d.Price, &d.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *orderDetailRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.OrderDetail, error) {
	return r.listBy(ctx, "order_id", orderID)
}

func (r *orderDetailRepository) ListByUser(ctx context.Context, userID string) ([]*models.OrderDetail, error) {
	return r.listBy(ctx, "user_id", userID)
}

func (r *orderDetailRepository) UpdateDetailTx(ctx context.Context, tx *sql.Tx, d *models.OrderDetail) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE order_details SET quantity = $1, od_price = $2 WHERE od_id = $3", d.Quantity, d.Price, d.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderDetailNotFound
	}
	return nil
}

func (r *orderDetailRepository) DeleteDetailTx(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM order_details WHERE od_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderDetailNotFound
	}
	return nil
}

// DeleteByOrderTx удаляет все позиции заказа; отсутствие строк ошибкой не считается
func (r *orderDetailRepository) DeleteByOrderTx(ctx context.Context, tx *sql.Tx, orderID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM order_details WHERE order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order details: %w", err)
	}
	return nil
}
