package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/app"
	"github.com/Zain4391/SOLEMATE/internal/app/handlers"
	"github.com/Zain4391/SOLEMATE/internal/config"
	"github.com/Zain4391/SOLEMATE/internal/jwt-new/jwtmiddleware"
	"github.com/Zain4391/SOLEMATE/internal/lib/logger"
	"github.com/Zain4391/SOLEMATE/internal/lib/logger/handlers/urllog"
	"github.com/Zain4391/SOLEMATE/internal/service"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	sizeRepo := storage.NewSizeRepository(application.DB)
	categoryRepo := storage.NewCategoryRepository(application.DB)
	imageRepo := storage.NewImageRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	detailRepo := storage.NewOrderDetailRepository(application.DB)
	paymentRepo := storage.NewPaymentRepository(application.DB)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute

	authService := service.NewAuthService(application.Logger, userRepo, cfg.JWT.Secret, tokenTTL)
	userService := service.NewUserService(application.Logger, application.DB, userRepo)
	productService := service.NewProductService(application.Logger, application.DB, productRepo, sizeRepo, categoryRepo, imageRepo)
	orderService := service.NewOrderService(application.Logger, application.DB, orderRepo, detailRepo, productRepo, sizeRepo)
	detailService := service.NewOrderDetailService(application.Logger, application.DB, orderRepo, detailRepo, productRepo, sizeRepo)
	paymentService := service.NewPaymentService(application.Logger, application.DB, orderRepo, paymentRepo)

	jwtMW := jwtmiddleware.New(cfg.JWT.Secret)

	// аутентификация
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", handlers.SignUpHandler(application.Logger, authService, tokenTTL))
		r.Post("/login", handlers.LoginHandler(application.Logger, authService, tokenTTL))
		r.Post("/admin/login", handlers.AdminLoginHandler(application.Logger, authService, tokenTTL))
		r.Post("/logout", handlers.LogoutHandler(application.Logger))
		r.With(jwtMW).Get("/me", handlers.MeHandler(application.Logger))
	})

	// каталог: чтение публичное, мутации только для администраторов
	router.Route("/api/products", func(r chi.Router) {
		r.Get("/", handlers.ListProductsHandler(application.Logger, productService))
		r.Get("/{productId}", handlers.GetProductHandler(application.Logger, productService))
		r.Get("/{productId}/sizes", handlers.ListSizesHandler(application.Logger, productService))
		r.Get("/{productId}/category", handlers.GetCategoryHandler(application.Logger, productService))
		r.Get("/{productId}/images", handlers.ListImagesHandler(application.Logger, productService))

		r.Group(func(r chi.Router) {
			r.Use(jwtMW)
			r.Use(jwtmiddleware.RequireAdmin)
			r.Post("/", handlers.CreateProductHandler(application.Logger, productService))
			r.Put("/{productId}", handlers.UpdateProductHandler(application.Logger, productService))
			r.Delete("/{productId}", handlers.DeleteProductHandler(application.Logger, productService))
			r.Post("/{productId}/sizes", handlers.AddSizeHandler(application.Logger, productService))
			r.Put("/{productId}/sizes/{sizeId}", handlers.UpdateSizeHandler(application.Logger, productService))
			r.Delete("/{productId}/sizes/{sizeId}", handlers.DeleteSizeHandler(application.Logger, productService))
			r.Post("/{productId}/category", handlers.CreateCategoryHandler(application.Logger, productService))
			r.Put("/{productId}/category/{categoryId}", handlers.UpdateCategoryHandler(application.Logger, productService))
			r.Delete("/{productId}/category/{categoryId}", handlers.DeleteCategoryHandler(application.Logger, productService))
			r.Post("/{productId}/images", handlers.AddImageHandler(application.Logger, productService))
			r.Put("/{productId}/images/{imageId}", handlers.UpdateImageHandler(application.Logger, productService))
			r.Delete("/{productId}/images/{imageId}", handlers.DeleteImageHandler(application.Logger, productService))
		})
	})

	// пользователи, заказы, позиции и платежи — только с токеном
	router.Route("/api/users", func(r chi.Router) {
		r.Use(jwtMW)

		r.With(jwtmiddleware.RequireAdmin).Get("/", handlers.ListUsersHandler(application.Logger, userService))
		r.Get("/{userId}", handlers.GetUserHandler(application.Logger, userService))
		r.Put("/{userId}", handlers.UpdateUserHandler(application.Logger, userService))
		r.With(jwtmiddleware.RequireAdmin).Delete("/{userId}", handlers.DeleteUserHandler(application.Logger, userService))

		r.Route("/{userId}/order", func(r chi.Router) {
			r.Post("/", handlers.CreateOrderHandler(application.Logger, orderService))
			r.Get("/", handlers.GetOrdersHandler(application.Logger, orderService))
			r.Get("/current", handlers.GetCurrentOrderHandler(application.Logger, orderService))
			r.Get("/{orderId}", handlers.GetOrderByIDHandler(application.Logger, orderService))
			r.Put("/{orderId}", handlers.UpdateAddressHandler(application.Logger, orderService))
			r.Delete("/{orderId}", handlers.DeleteOrderHandler(application.Logger, orderService))

			r.Route("/{orderId}/order_details", func(r chi.Router) {
				r.Post("/", handlers.AddDetailHandler(application.Logger, detailService))
				r.Get("/", handlers.ListDetailsByOrderHandler(application.Logger, detailService))
				r.Get("/{odId}", handlers.GetDetailHandler(application.Logger, detailService))
				r.Put("/{odId}", handlers.UpdateDetailHandler(application.Logger, detailService))
				r.Delete("/{odId}", handlers.DeleteDetailHandler(application.Logger, detailService))
			})

			r.Route("/{orderId}/payments", func(r chi.Router) {
				r.Post("/", handlers.CreatePaymentHandler(application.Logger, paymentService))
				r.Get("/", handlers.ListPaymentsHandler(application.Logger, paymentService))
				r.Get("/{paymentId}", handlers.GetPaymentHandler(application.Logger, paymentService))
				r.Put("/{paymentId}", handlers.UpdatePaymentStatusHandler(application.Logger, paymentService))
			})
		})

		r.Get("/{userId}/order_details", handlers.ListDetailsByUserHandler(application.Logger, detailService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
