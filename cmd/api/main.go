package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shoplane/shoplane-api/internal/config"
	"github.com/shoplane/shoplane-api/internal/database"
	"github.com/shoplane/shoplane-api/internal/handler"
	"github.com/shoplane/shoplane-api/internal/middleware"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/service"
)

// main is the application entrypoint for the Shoplane storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting shoplane api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5. Initialize services
	productSvc := service.NewProductService(productRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	authSvc := service.NewAuthService(userRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(),
		Product:  handler.NewProductHandler(productSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		Auth:     handler.NewAuthHandler(authSvc),
		Order:    handler.NewOrderHandler(orderSvc),
	}

	// 7. Initialize middleware
	authMw := middleware.NewAuthMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ErrorHandler(cfg.Env))
	setupRoutes(router, handlers, authMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Auth     *handler.AuthHandler
	Order    *handler.OrderHandler
}

// setupRoutes registers all routes. Write operations on the catalog are
// admin-gated; orders and profiles require an authenticated caller.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMw *middleware.AuthMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", handlers.Product.GetProducts)
			products.GET("/featured", handlers.Product.GetFeaturedProducts)
			products.GET("/on-sale", handlers.Product.GetOnSaleProducts)
			products.GET("/:id", handlers.Product.GetProductByID)
			products.POST("", authMw.Protect(), authMw.Admin(), handlers.Product.CreateProduct)
			products.PUT("/:id", authMw.Protect(), authMw.Admin(), handlers.Product.UpdateProduct)
			products.DELETE("/:id", authMw.Protect(), authMw.Admin(), handlers.Product.DeleteProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", handlers.Category.GetCategories)
			categories.GET("/:id", handlers.Category.GetCategoryByID)
			categories.POST("", authMw.Protect(), authMw.Admin(), handlers.Category.CreateCategory)
			categories.PUT("/:id", authMw.Protect(), authMw.Admin(), handlers.Category.UpdateCategory)
			categories.DELETE("/:id", authMw.Protect(), authMw.Admin(), handlers.Category.DeleteCategory)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Auth.Register)
			auth.POST("/login", handlers.Auth.Login)
		}

		users := api.Group("/users")
		users.Use(authMw.Protect())
		{
			users.GET("/profile", handlers.Auth.GetProfile)
			users.PUT("/profile", handlers.Auth.UpdateProfile)
		}

		orders := api.Group("/orders")
		orders.Use(authMw.Protect())
		{
			orders.POST("", handlers.Order.CreateOrder)
			orders.GET("", handlers.Order.ListOrders)
			orders.GET("/:id", handlers.Order.GetOrderByID)
		}
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
