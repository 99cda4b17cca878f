package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"placeholder/internal/handlers"
	"placeholder/internal/middleware"
	"placeholder/internal/models"
	"placeholder/internal/repositories"
	"placeholder/internal/seeder"
	"placeholder/internal/services"
	"placeholder/pkg/events"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "placeholder.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("JWT_TTL_HOURS", 24)
	viper.SetDefault("SEED_URL", seeder.DefaultSourceURL)
	viper.SetDefault("SEED_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Account{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event publishing (optional) ---
	var publisher services.EventPublisher
	var eventClient *events.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		eventClient, err = events.NewClient(events.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize event client: %v", err)
		}
		defer eventClient.Close()
		publisher = eventClient
	} else {
		log.Println("RABBITMQ_URL not set. Event publishing disabled.")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	accountRepo := repositories.NewGORMAccountRepository(db)

	// --- Seeding ---
	// Runs once, before the server accepts any traffic. A failed seed leaves
	// the store empty but does not stop the process.
	seedTimeout := time.Duration(viper.GetInt("SEED_TIMEOUT_SECONDS")) * time.Second
	if err := seeder.New(userRepo, viper.GetString("SEED_URL"), seedTimeout).Run(); err != nil {
		log.Printf("Error seeding store: %v", err)
	}

	// --- Services ---
	authService := services.NewAuthService(
		accountRepo,
		viper.GetString("JWT_SECRET"),
		time.Duration(viper.GetInt("JWT_TTL_HOURS"))*time.Hour,
	)
	userService := services.NewUserService(userRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, middleware.AuthRequired(authService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured storage engine. sqlite is the default;
// postgres is selected with DB_DRIVER=postgres and a matching DSN.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
