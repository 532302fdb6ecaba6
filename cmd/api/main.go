package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"welile-backend/internal/config"
	"welile-backend/internal/handler"
	"welile-backend/internal/middleware"
	"welile-backend/internal/repository"
	"welile-backend/internal/service"
	"welile-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (receipt archiving disabled)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.Send)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/tokens", h.Notification.ParseMessageTokens)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Get("/:id/thread", h.Thread.GetThread)
	notifications.Post("/:id/reply", h.Thread.Reply)
	notifications.Post("/:id/apply", middleware.RequireRole("manager"), h.Payment.Apply)

	payments := protected.Group("/payments")
	payments.Post("/agent", h.Payment.RecordAsAgent)
	payments.Post("/manager", middleware.RequireRole("manager"), h.Payment.RecordAsManager)

	tenants := protected.Group("/tenants")
	tenants.Get("/", h.Portfolio.ListTenants)
	tenants.Get("/:id", h.Portfolio.GetTenant)
	tenants.Get("/:id/collections", h.Portfolio.ListTenantCollections)

	collections := protected.Group("/collections")
	collections.Get("/", h.Portfolio.ListCollections)

	protected.Get("/changes/stream", h.Changes.Stream)

	audit := protected.Group("/audit")
	audit.Get("/recent", middleware.RequireRole("manager"), h.Audit.GetRecentActivities)
	audit.Get("/:entityType/:entityId", middleware.RequireRole("manager"), h.Audit.GetEntityHistory)
}
