package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/lib/pq"
)

var (
	ErrSizeNotFound      = errors.New("size not found")
	ErrInsufficientStock = errors.New("not enough stock available")
)

// SizeStorage описывает методы для работы с остатками по размерам.
type SizeStorage interface {
	ListSizes(ctx context.Context, productID string) ([]*models.ProductSize, error)
	GetSizeByID(ctx context.Context, id string) (*models.ProductSize, error)
	// LockSizeTx блокирует строку размера (FOR UPDATE NOWAIT) до проверки остатка,
	// чтобы конкурентные добавления позиций по одному размеру выполнялись последовательно.
	LockSizeTx(ctx context.Context, tx *sql.Tx, productID, size string) (*models.ProductSize, error)
	// DecrementStockTx списывает остаток; условие stock >= quantity защищает от ухода в минус.
	DecrementStockTx(ctx context.Context, tx *sql.Tx, productID, size string, quantity int) error
	CreateSize(ctx context.Context, s *models.ProductSize) error
	UpdateSize(ctx context.Context, s *models.ProductSize) error
	DeleteSize(ctx context.Context, id string) error
}

type sizeRepository struct {
	db *sql.DB
}

func NewSizeRepository(db *sql.DB) SizeStorage {
	return &sizeRepository{db: db}
}

func (r *sizeRepository) ListSizes(ctx context.Context, productID string) ([]*models.ProductSize, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, size, stock FROM product_sizes WHERE product_id = $1 ORDER BY size", productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var sizes []*models.ProductSize
	for rows.Next() {
		s := &models.ProductSize{}
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Size, &s.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *sizeRepository) GetSizeByID(ctx context.Context, id string) (*models.ProductSize, error) {
	s := &models.ProductSize{}
	row := r.db.QueryRowContext(ctx, "SELECT id, product_id, size, stock FROM product_sizes WHERE id = $1", id)
	if err := row.Scan(&s.ID, &s.ProductID, &s.Size, &s.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sizeRepository) LockSizeTx(ctx context.Context, tx *sql.Tx, productID, size string) (*models.ProductSize, error) {
	s := &models.ProductSize{}
	row := tx.QueryRowContext(ctx,
		"SELECT id, product_id, size, stock FROM product_sizes WHERE product_id = $1 AND size = $2 FOR UPDATE NOWAIT",
		productID, size)
	if err := row.Scan(&s.ID, &s.ProductID, &s.Size, &s.Stock); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "55P03" { // lock
				return nil, fmt.Errorf("resource is locked, please try again: %w", err)
			}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sizeRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID, size string, quantity int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE product_sizes SET stock = stock - $1 WHERE product_id = $2 AND size = $3 AND stock >= $1",
		quantity, productID, size)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *sizeRepository) CreateSize(ctx context.Context, s *models.ProductSize) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO product_sizes (id, product_id, size, stock) VALUES ($1, $2, $3, $4)",
		s.ID, s.ProductID, s.Size, s.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to create size: %w", err)
	}
	return nil
}

func (r *sizeRepository) UpdateSize(ctx context.Context, s *models.ProductSize) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE product_sizes SET size = $1, stock = $2 WHERE id = $3", s.Size, s.Stock, s.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSizeNotFound
	}
	return nil
}

func (r *sizeRepository) DeleteSize(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_sizes WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSizeNotFound
	}
	return nil
}
