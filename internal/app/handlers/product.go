package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreateProductRequest — тело запроса создания товара
type CreateProductRequest struct {
	Name  string  `json:"p_name" validate:"required"`
	Brand string  `json:"brand" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest — частичное обновление товара
type UpdateProductRequest struct {
	Name  *string  `json:"p_name"`
	Brand *string  `json:"brand"`
	Price *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock *int     `json:"stock" validate:"omitempty,gte=0"`
}

// AddSizeRequest — тело запроса добавления размера к товару
type AddSizeRequest struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// UpdateSizeRequest — частичное обновление размера
type UpdateSizeRequest struct {
	Size  *string `json:"size"`
	Stock *int    `json:"stock" validate:"omitempty,gte=0"`
}

// CategoryRequest — тело запроса создания/обновления категории
type CategoryRequest struct {
	Name        string `json:"c_name" validate:"required"`
	Description string `json:"description"`
}

// ImageRequest — тело запроса добавления/замены изображения
type ImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// ListProductsHandler обрабатывает GET /api/products
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Products", nil)
			return
		}
		respond(w, http.StatusOK, "Products retrieved successfully", false, "Products", products)
	}
}

// GetProductHandler обрабатывает GET /api/products/{productId}
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		product, err := productService.GetProductByID(r.Context(), productID)
		if err != nil {
			logger.Error("failed to get product", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Product", nil)
			return
		}
		respond(w, http.StatusOK, "Product retrieved successfully", false, "Product", product)
	}
}

// CreateProductHandler обрабатывает POST /api/products — только для администраторов
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Product", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "All fields are required", true, "Product", nil)
			return
		}

		product, err := productService.CreateProduct(r.Context(), req.Name, req.Brand, req.Price, req.Stock)
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Product", nil)
			return
		}

		logger.Info("product created", slog.String("product_id", product.ID), slog.String("name", product.Name))
		respond(w, http.StatusCreated, "Product created successfully", false, "Product", product)
	}
}

// UpdateProductHandler обрабатывает PUT /api/products/{productId} — только для администраторов
func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		var req UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Product", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "validation error", true, "Product", nil)
			return
		}

		product, err := productService.UpdateProduct(r.Context(), productID, service.ProductPatch{
			Name:  req.Name,
			Brand: req.Brand,
			Price: req.Price,
			Stock: req.Stock,
		})
		if err != nil {
			logger.Error("failed to update product", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Product", nil)
			return
		}
		respond(w, http.StatusOK, "Product updated successfully", false, "Product", product)
	}
}

// DeleteProductHandler обрабатывает DELETE /api/products/{productId} — только для администраторов
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		if err := productService.DeleteProduct(r.Context(), productID); err != nil {
			logger.Error("failed to delete product", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Product deleted successfully", false, "", nil)
	}
}

// ListSizesHandler обрабатывает GET /api/products/{productId}/sizes
func ListSizesHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListSizesHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		sizes, err := productService.ListSizes(r.Context(), productID)
		if err != nil {
			logger.Error("failed to list sizes", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Sizes", nil)
			return
		}
		respond(w, http.StatusOK, "Sizes retrieved successfully", false, "Sizes", sizes)
	}
}

// AddSizeHandler обрабатывает POST /api/products/{productId}/sizes — только для администраторов
func AddSizeHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddSizeHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		var req AddSizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Size", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Size is required", true, "Size", nil)
			return
		}

		size, err := productService.AddSize(r.Context(), productID, req.Size, req.Stock)
		if err != nil {
			logger.Error("failed to add size", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Size", nil)
			return
		}
		respond(w, http.StatusCreated, "Size added successfully", false, "Size", size)
	}
}

// UpdateSizeHandler обрабатывает PUT /api/products/{productId}/sizes/{sizeId} — только для администраторов
func UpdateSizeHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateSizeHandler"
		logger := log.With(slog.String("op", op))

		sizeID := chi.URLParam(r, "sizeId")

		var req UpdateSizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Size", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "validation error", true, "Size", nil)
			return
		}

		size, err := productService.UpdateSize(r.Context(), sizeID, service.SizePatch{
			Size:  req.Size,
			Stock: req.Stock,
		})
		if err != nil {
			logger.Error("failed to update size", slog.String("size_id", sizeID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Size", nil)
			return
		}
		respond(w, http.StatusOK, "Size updated successfully", false, "Size", size)
	}
}

// DeleteSizeHandler обрабатывает DELETE /api/products/{productId}/sizes/{sizeId} — только для администраторов
func DeleteSizeHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteSizeHandler"
		logger := log.With(slog.String("op", op))

		sizeID := chi.URLParam(r, "sizeId")

		if err := productService.DeleteSize(r.Context(), sizeID); err != nil {
			logger.Error("failed to delete size", slog.String("size_id", sizeID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Size deleted successfully", false, "", nil)
	}
}

// GetCategoryHandler обрабатывает GET /api/products/{productId}/category
func GetCategoryHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCategoryHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		category, err := productService.GetCategory(r.Context(), productID)
		if err != nil {
			logger.Error("failed to get category", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Category", nil)
			return
		}
		respond(w, http.StatusOK, "Category retrieved successfully", false, "Category", category)
	}
}

// CreateCategoryHandler обрабатывает POST /api/products/{productId}/category — только для администраторов
func CreateCategoryHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Category", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Category name is required", true, "Category", nil)
			return
		}

		category, err := productService.CreateCategory(r.Context(), productID, req.Name, req.Description)
		if err != nil {
			logger.Error("failed to create category", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Category", nil)
			return
		}
		respond(w, http.StatusCreated, "Category created successfully", false, "Category", category)
	}
}

// UpdateCategoryHandler обрабатывает PUT /api/products/{productId}/category/{categoryId} — только для администраторов
func UpdateCategoryHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		categoryID := chi.URLParam(r, "categoryId")

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Category", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Category name is required", true, "Category", nil)
			return
		}

		category, err := productService.UpdateCategory(r.Context(), categoryID, req.Name, req.Description)
		if err != nil {
			logger.Error("failed to update category", slog.String("category_id", categoryID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Category", nil)
			return
		}
		respond(w, http.StatusOK, "Category updated successfully", false, "Category", category)
	}
}

// DeleteCategoryHandler обрабатывает DELETE /api/products/{productId}/category/{categoryId} — только для администраторов
func DeleteCategoryHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		categoryID := chi.URLParam(r, "categoryId")

		if err := productService.DeleteCategory(r.Context(), categoryID); err != nil {
			logger.Error("failed to delete category", slog.String("category_id", categoryID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Category deleted successfully", false, "", nil)
	}
}

// ListImagesHandler обрабатывает GET /api/products/{productId}/images
func ListImagesHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListImagesHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		images, err := productService.ListImages(r.Context(), productID)
		if err != nil {
			logger.Error("failed to list images", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Images", nil)
			return
		}
		respond(w, http.StatusOK, "Images retrieved successfully", false, "Images", images)
	}
}

// AddImageHandler обрабатывает POST /api/products/{productId}/images — только для администраторов
func AddImageHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddImageHandler"
		logger := log.With(slog.String("op", op))

		productID := chi.URLParam(r, "productId")

		var req ImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Image", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Image URL is required", true, "Image", nil)
			return
		}

		image, err := productService.AddImage(r.Context(), productID, req.ImageURL)
		if err != nil {
			logger.Error("failed to add image", slog.String("product_id", productID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Image", nil)
			return
		}
		respond(w, http.StatusCreated, "Image added successfully", false, "Image", image)
	}
}

// UpdateImageHandler обрабатывает PUT /api/products/{productId}/images/{imageId} — только для администраторов
func UpdateImageHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateImageHandler"
		logger := log.With(slog.String("op", op))

		imageID := chi.URLParam(r, "imageId")

		var req ImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respond(w, http.StatusBadRequest, "invalid request", true, "Image", nil)
			return
		}
		if err := validate.Struct(req); err != nil {
			respond(w, http.StatusBadRequest, "Image URL is required", true, "Image", nil)
			return
		}

		image, err := productService.UpdateImage(r.Context(), imageID, req.ImageURL)
		if err != nil {
			logger.Error("failed to update image", slog.String("image_id", imageID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "Image", nil)
			return
		}
		respond(w, http.StatusOK, "Image updated successfully", false, "Image", image)
	}
}

// DeleteImageHandler обрабатывает DELETE /api/products/{productId}/images/{imageId} — только для администраторов
func DeleteImageHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteImageHandler"
		logger := log.With(slog.String("op", op))

		imageID := chi.URLParam(r, "imageId")

		if err := productService.DeleteImage(r.Context(), imageID); err != nil {
			logger.Error("failed to delete image", slog.String("image_id", imageID), slog.Any("error", err))
			respond(w, statusFromError(err), err.Error(), true, "", nil)
			return
		}
		respond(w, http.StatusOK, "Image deleted successfully", false, "", nil)
	}
}
