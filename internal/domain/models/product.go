package models

// Product представляет товар каталога
type Product struct {
	ID    string  `json:"p_id"`
	Name  string  `json:"p_name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"` // базовая цена, копируется в позицию заказа при добавлении
	Stock int     `json:"stock"` // общий остаток, без разбивки по размерам
}

// ProductSize представляет остаток товара по конкретному размеру
type ProductSize struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

// ProductImage представляет ссылку на изображение товара
type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

// Category представляет категорию товара (ноль или одна на товар)
type Category struct {
	ID          string `json:"c_id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"c_name"`
	Description string `json:"description"`
}
