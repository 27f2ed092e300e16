package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"campus-booking/internal/config"
	"campus-booking/internal/domain"
	"campus-booking/internal/handler"
	"campus-booking/internal/middleware"
	"campus-booking/internal/repository"
	"campus-booking/internal/service"
	"campus-booking/internal/service/auth"
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
		log.Printf("Warning: Failed to connect to MinIO: %v (photo upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
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
		port = "8080"
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
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Get("/", middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge, domain.RoleStaff), h.User.List)
	users.Post("/", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.Get("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.GetByID)
	users.Post("/:id/deactivate", middleware.RequireRole(domain.RoleAdmin), h.User.Deactivate)
	users.Post("/:id/reactivate", middleware.RequireRole(domain.RoleAdmin), h.User.Reactivate)

	resources := protected.Group("/resources")
	resources.Get("/", h.Resource.List)
	resources.Get("/:id", h.Resource.GetByID)
	resources.Get("/:id/availability", h.Booking.Availability)
	resources.Post("/", middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge), h.Resource.Create)
	resources.Put("/:id", middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge), h.Resource.Update)
	resources.Post("/:id/photo", middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge), h.Resource.UploadPhoto)

	bookings := protected.Group("/bookings")
	bookings.Post("/", h.Booking.Create)
	bookings.Get("/", h.Booking.List)
	bookings.Get("/:id", h.Booking.GetByID)
	bookings.Post("/:id/approve",
		middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge, domain.RoleStaff),
		h.Booking.Approve)
	bookings.Post("/:id/reject",
		middleware.RequireAnyRole(domain.RoleAdmin, domain.RoleLabInCharge, domain.RoleStaff),
		h.Booking.Reject)

	meetings := protected.Group("/meetings")
	meetings.Post("/", middleware.RequireRole(domain.RoleAdmin), h.Meeting.Create)
	meetings.Get("/", h.Meeting.List)
	meetings.Get("/:id", h.Meeting.GetByID)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/me", h.Dashboard.UserStats)
	dashboard.Get("/system", middleware.RequireRole(domain.RoleAdmin), h.Dashboard.SystemStats)

	audit := protected.Group("/audit")
	audit.Get("/", middleware.RequireRole(domain.RoleAdmin), h.Audit.List)
}
