package models

// OrderDetail представляет позицию заказа: товар + размер + количество.
// Цена od_price фиксируется в момент добавления и дальше не перечитывается из товара.
type OrderDetail struct {
	ID        string  `json:"od_id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"od_price"`
	UserID    string  `json:"user_id"`
}
