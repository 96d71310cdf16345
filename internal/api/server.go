package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sundaymarket/shop_service/config"
	"github.com/sundaymarket/shop_service/infra/queue"
	"github.com/sundaymarket/shop_service/internal/api/rest/handlers"
	"github.com/sundaymarket/shop_service/internal/api/rest/middleware"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/mailer"
	"github.com/sundaymarket/shop_service/internal/repository"
	"github.com/sundaymarket/shop_service/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	// One fixed id across all replicas so only one runs the migration.
	const migrateLockID int64 = 20260419

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Address{},
		&domain.Category{},
		&domain.Product{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	mailSender := mailer.New(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)
	mailConsumer := queue.NewConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		mailSender,
	)
	go mailConsumer.Listen(context.Background())

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, kafkaProducer, authHelper, cfg.ResetBaseURL)
	userSvc := services.NewUserService(userRepo, addressRepo)
	productSvc := services.NewProductService(productRepo, categoryRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, addressRepo)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	productHandler := handlers.NewProductHandler(productSvc, cfg.UploadDir, publicBaseURL(cfg))
	categoryHandler := handlers.NewCategoryHandler(categorySvc)
	cartHandler := handlers.NewCartHandler(cartSvc)
	orderHandler := handlers.NewOrderHandler(orderSvc)

	// ---------- Routes ----------
	app.Static("/uploads", cfg.UploadDir)

	// Public routes first, then everything behind the session.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	authHandler.SetupRoutes(app)
	productHandler.SetupPublicRoutes(app)
	categoryHandler.SetupPublicRoutes(app)

	app.Use(middleware.AuthMiddleware(authHelper))
	adminOnly := middleware.AdminOnly(userSvc)

	userHandler.SetupRoutes(app)
	cartHandler.SetupRoutes(app)
	orderHandler.SetupRoutes(app)
	orderHandler.SetupAdminRoutes(app, adminOnly)
	productHandler.SetupAdminRoutes(app, adminOnly)
	categoryHandler.SetupAdminRoutes(app, adminOnly)

	// ---------- Listen ----------
	addr := cfg.ServerAddr
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// publicBaseURL is what gets baked into stored image links. The CORS
// origin doubles as the public address unless it is the wildcard.
func publicBaseURL(cfg config.Config) string {
	if cfg.BaseURL == "" || cfg.BaseURL == "*" {
		return "http://localhost:3000"
	}
	return cfg.BaseURL
}
