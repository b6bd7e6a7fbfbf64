package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentStorage описывает методы для работы с платежами.
type PaymentStorage interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error)
	// UpdateStatusTx меняет статус платежа внутри транзакции; ноль затронутых строк — NotFound.
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, paymentID, status string) (*models.Payment, error)
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentStorage {
	return &paymentRepository{db: db}
}

const paymentColumns = "payment_id, order_id, payment_amount, payment_date, payment_method, status"

func (r *paymentRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `INSERT INTO payments (payment_id, order_id, payment_amount, payment_date, payment_method, status)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OrderID, p.Amount, p.Date, p.Method, p.Status)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	p := &models.Payment{}
	row := r.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE payment_id = $1", id)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Date, &p.Method, &p.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payments WHERE order_id = $1 ORDER BY payment_date DESC"
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Date, &p.Method, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, paymentID, status string) (*models.Payment, error) {
	p := &models.Payment{}
	query := "UPDATE payments SET status = $1 WHERE payment_id = $2 RETURNING " + paymentColumns
	row := tx.QueryRowContext(ctx, query, status, paymentID)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Date, &p.Method, &p.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}
