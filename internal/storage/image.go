package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
)

var ErrImageNotFound = errors.New("image not found")

// ImageStorage описывает методы для работы с изображениями товаров.
// Хранится только ссылка, само изображение лежит во внешнем хранилище.
type ImageStorage interface {
	ListImages(ctx context.Context, productID string) ([]*models.ProductImage, error)
	GetImageByID(ctx context.Context, id string) (*models.ProductImage, error)
	CreateImage(ctx context.Context, img *models.ProductImage) error
	UpdateImage(ctx context.Context, img *models.ProductImage) error
	DeleteImage(ctx context.Context, id string) error
}

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) ImageStorage {
	return &imageRepository{db: db}
}

func (r *imageRepository) ListImages(ctx context.Context, productID string) ([]*models.ProductImage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, image_url FROM product_images WHERE product_id = $1", productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		img := &models.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) GetImageByID(ctx context.Context, id string) (*models.ProductImage, error) {
	img := &models.ProductImage{}
	row := r.db.QueryRowContext(ctx, "SELECT id, product_id, image_url FROM product_images WHERE id = $1", id)
	if err := row.Scan(&img.ID, &img.ProductID, &img.ImageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *imageRepository) CreateImage(ctx context.Context, img *models.ProductImage) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO product_images (id, product_id, image_url) VALUES ($1, $2, $3)",
		img.ID, img.ProductID, img.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (r *imageRepository) UpdateImage(ctx context.Context, img *models.ProductImage) error {
	res, err := r.db.ExecContext(ctx, "UPDATE product_images SET image_url = $1 WHERE id = $2", img.ImageURL, img.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *imageRepository) DeleteImage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_images WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}
	return nil
}
