package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"like-exchange-system/handlers"
	"like-exchange-system/middleware"
	"like-exchange-system/models"
	"like-exchange-system/services"
	"like-exchange-system/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "like-exchange-system",
	})

	// Optional: only gateway-forwarded requests when a token is set
	if serviceToken := os.Getenv("LIKE_SERVICE_TOKEN"); serviceToken != "" {
		app.Use(middleware.GatewayAuthMiddleware(serviceToken))
		log.Println("✅ GatewayAuthMiddleware enforced — all requests must carry the service token")
	}

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		MaxAge:       86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	adminSecret := os.Getenv("ADMIN_SHARED_SECRET")
	if adminSecret == "" {
		log.Fatal("ADMIN_SHARED_SECRET environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ExchangeRequest{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	st := store.NewGorm(db)
	ledgerService := services.NewLedgerService(st, adminSecret)
	exchangeService := services.NewExchangeService(st)

	exchangeService.StartStaleClaimMonitor(10*time.Minute, 24*time.Hour)

	handlers.SetupLedgerRoutes(app, ledgerService)
	handlers.SetupExchangeRoutes(app, exchangeService)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":5300"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Like exchange running on %s", addr)
	log.Println("✅ Stale claim monitor running (every 10m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
