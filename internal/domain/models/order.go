package models

import "time"

// Order представляет заказ пользователя. Пока is_complete = false,
// заказ играет роль корзины ("текущий заказ").
type Order struct {
	ID           string    `json:"o_id"`
	UserID       string    `json:"user_id"`
	OrderDate    time.Time `json:"order_date"`
	PromisedDate time.Time `json:"promised_date"`
	Address      string    `json:"address"`
	TotalAmount  float64   `json:"total_amount"` // производное поле, пересчитывается из позиций
	IsComplete   bool      `json:"is_complete"`
}
