package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/google/uuid"
)

// ProductPatch — частичное обновление товара: nil-поля остаются прежними.
type ProductPatch struct {
	Name  *string
	Brand *string
	Price *float64
	Stock *int
}

// SizePatch — частичное обновление размерной строки.
type SizePatch struct {
	Size  *string
	Stock *int
}

// ProductService управляет каталогом: товары, размеры, категории, изображения.
type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, name, brand string, price float64, stock int) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListSizes(ctx context.Context, productID string) ([]*models.ProductSize, error)
	GetSizeByID(ctx context.Context, id string) (*models.ProductSize, error)
	AddSize(ctx context.Context, productID, size string, stock int) (*models.ProductSize, error)
	UpdateSize(ctx context.Context, id string, patch SizePatch) (*models.ProductSize, error)
	DeleteSize(ctx context.Context, id string) error

	GetCategory(ctx context.Context, productID string) (*models.Category, error)
	CreateCategory(ctx context.Context, productID, name, description string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id, name, description string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListImages(ctx context.Context, productID string) ([]*models.ProductImage, error)
	GetImageByID(ctx context.Context, id string) (*models.ProductImage, error)
	AddImage(ctx context.Context, productID, imageURL string) (*models.ProductImage, error)
	UpdateImage(ctx context.Context, id, imageURL string) (*models.ProductImage, error)
	DeleteImage(ctx context.Context, id string) error
}

type productService struct {
	log          *slog.Logger
	db           *sql.DB
	productRepo  storage.ProductStorage
	sizeRepo     storage.SizeStorage
	categoryRepo storage.CategoryStorage
	imageRepo    storage.ImageStorage
}

func NewProductService(log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage, sizeRepo storage.SizeStorage, categoryRepo storage.CategoryStorage, imageRepo storage.ImageStorage) ProductService {
	return &productService{
		log:          log,
		db:           db,
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.ProductService.ListProducts"
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "service.ProductService.GetProductByID"
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, name, brand string, price float64, stock int) (*models.Product, error) {
	const op = "service.ProductService.CreateProduct"
	product := &models.Product{
		ID:    uuid.NewString(),
		Name:  name,
		Brand: brand,
		Price: price,
		Stock: stock,
	}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		s.log.Error("failed to create product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("product created", slog.String("op", op), slog.String("productID", product.ID))
	return product, nil
}

// UpdateProduct накладывает патч на свежепрочитанную строку внутри транзакции обновления.
func (s *productService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	const op = "service.ProductService.UpdateProduct"
	logger := s.log.With(slog.String("op", op), slog.String("productID", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	product, err := s.productRepo.GetProductTx(ctx, tx, id)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Brand != nil {
		product.Brand = *patch.Brand
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}

	if err := s.productRepo.UpdateProductTx(ctx, tx, product); err != nil {
		rollback(logger, tx)
		logger.Error("failed to update product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update product: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("product updated successfully")
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	const op = "service.ProductService.DeleteProduct"
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		s.log.Error("failed to delete product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *productService) ListSizes(ctx context.Context, productID string) ([]*models.ProductSize, error) {
	const op = "service.ProductService.ListSizes"
	sizes, err := s.sizeRepo.ListSizes(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sizes, nil
}

func (s *productService) GetSizeByID(ctx context.Context, id string) (*models.ProductSize, error) {
	const op = "service.ProductService.GetSizeByID"
	size, err := s.sizeRepo.GetSizeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return size, nil
}

func (s *productService) AddSize(ctx context.Context, productID, size string, stock int) (*models.ProductSize, error) {
	const op = "service.ProductService.AddSize"
	// размер привязывается только к существующему товару
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row := &models.ProductSize{
		ID:        uuid.NewString(),
		ProductID: productID,
		Size:      size,
		Stock:     stock,
	}
	if err := s.sizeRepo.CreateSize(ctx, row); err != nil {
		s.log.Error("failed to create size", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row, nil
}

func (s *productService) UpdateSize(ctx context.Context, id string, patch SizePatch) (*models.ProductSize, error) {
	const op = "service.ProductService.UpdateSize"
	row, err := s.sizeRepo.GetSizeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if patch.Size != nil {
		row.Size = *patch.Size
	}
	if patch.Stock != nil {
		row.Stock = *patch.Stock
	}
	if err := s.sizeRepo.UpdateSize(ctx, row); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row, nil
}

func (s *productService) DeleteSize(ctx context.Context, id string) error {
	const op = "service.ProductService.DeleteSize"
	if err := s.sizeRepo.DeleteSize(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *productService) GetCategory(ctx context.Context, productID string) (*models.Category, error) {
	const op = "service.ProductService.GetCategory"
	category, err := s.categoryRepo.GetCategoryByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *productService) CreateCategory(ctx context.Context, productID, name, description string) (*models.Category, error) {
	const op = "service.ProductService.CreateCategory"
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	category := &models.Category{
		ID:          uuid.NewString(),
		ProductID:   productID,
		Name:        name,
		Description: description,
	}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		s.log.Error("failed to create category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *productService) UpdateCategory(ctx context.Context, id, name, description string) (*models.Category, error) {
	const op = "service.ProductService.UpdateCategory"
	category := &models.Category{ID: id, Name: name, Description: description}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *productService) DeleteCategory(ctx context.Context, id string) error {
	const op = "service.ProductService.DeleteCategory"
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *productService) ListImages(ctx context.Context, productID string) ([]*models.ProductImage, error) {
	const op = "service.ProductService.ListImages"
	images, err := s.imageRepo.ListImages(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return images, nil
}

func (s *productService) GetImageByID(ctx context.Context, id string) (*models.ProductImage, error) {
	const op = "service.ProductService.GetImageByID"
	image, err := s.imageRepo.GetImageByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return image, nil
}

func (s *productService) AddImage(ctx context.Context, productID, imageURL string) (*models.ProductImage, error) {
	const op = "service.ProductService.AddImage"
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	image := &models.ProductImage{
		ID:        uuid.NewString(),
		ProductID: productID,
		ImageURL:  imageURL,
	}
	if err := s.imageRepo.CreateImage(ctx, image); err != nil {
		s.log.Error("failed to create image", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return image, nil
}

func (s *productService) UpdateImage(ctx context.Context, id, imageURL string) (*models.ProductImage, error) {
	const op = "service.ProductService.UpdateImage"
	image, err := s.imageRepo.GetImageByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	image.ImageURL = imageURL
	if err := s.imageRepo.UpdateImage(ctx, image); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return image, nil
}

func (s *productService) DeleteImage(ctx context.Context, id string) error {
	const op = "service.ProductService.DeleteImage"
	if err := s.imageRepo.DeleteImage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
