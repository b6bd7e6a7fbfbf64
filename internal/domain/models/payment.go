package models

import "time"

// статусы платежа
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment представляет платёж по заказу.
// Заказ помечается завершённым только при переходе платежа в статус COMPLETED.
type Payment struct {
	ID      string    `json:"payment_id"`
	OrderID string    `json:"order_id"`
	Amount  float64   `json:"payment_amount"`
	Date    time.Time `json:"payment_date"`
	Method  string    `json:"payment_method"`
	Status  string    `json:"status"`
}
