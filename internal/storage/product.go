package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с таблицей товаров.
type ProductStorage interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// GetProductTx читает товар внутри транзакции: цена фиксируется в позицию заказа.
	GetProductTx(ctx context.Context, tx *sql.Tx, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProductTx(ctx context.Context, tx *sql.Tx, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT p_id, p_name, brand, price, stock FROM products ORDER BY p_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	p := &models.Product{}
	row := r.db.QueryRowContext(ctx, "SELECT p_id, p_name, brand, price, stock FROM products WHERE p_id = $1", id)
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetProductTx(ctx context.Context, tx *sql.Tx, id string) (*models.Product, error) {
	p := &models.Product{}
	row := tx.QueryRowContext(ctx, "SELECT p_id, p_name, brand, price, stock FROM products WHERE p_id = $1", id)
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO products (p_id, p_name, brand, price, stock) VALUES ($1, $2, $3, $4, $5)",
		p.ID, p.Name, p.Brand, p.Price, p.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) UpdateProductTx(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET p_name = $1, brand = $2, price = $3, stock = $4 WHERE p_id = $5",
		p.Name, p.Brand, p.Price, p.Stock, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE p_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
