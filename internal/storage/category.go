package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryStorage описывает методы для работы с категориями товаров.
type CategoryStorage interface {
	GetCategoryByProduct(ctx context.Context, productID string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryStorage {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategoryByProduct(ctx context.Context, productID string) (*models.Category, error) {
	c := &models.Category{}
	row := r.db.QueryRowContext(ctx,
		"SELECT c_id, product_id, c_name, description FROM categories WHERE product_id = $1", productID)
	if err := row.Scan(&c.ID, &c.ProductID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (c_id, product_id, c_name, description) VALUES ($1, $2, $3, $4)",
		c.ID, c.ProductID, c.Name, c.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE categories SET c_name = $1, description = $2 WHERE c_id = $3", c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE c_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
