package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sibcargo/cmd"
	httpadapter "sibcargo/internal/adapters/in/http"
	"sibcargo/internal/adapters/in/telegram"
	"sibcargo/internal/adapters/out/googlegeo"
	"sibcargo/internal/adapters/out/postgres/orderrepo"
	"sibcargo/internal/adapters/out/postgres/userrepo"
	"sibcargo/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := connectDB(configs)

	root := cmd.NewCompositionRoot(configs, db, logger)

	geocoder, err := googlegeo.NewGeocoder(configs.GoogleMapsAPIKey)
	if err != nil {
		log.Fatalf("Failed to create geocoder: %v", err)
	}

	machine, err := root.CreateIntakeMachine(geocoder)
	if err != nil {
		log.Fatalf("Failed to create intake machine: %v", err)
	}

	registerUser := root.CreateRegisterUserCommandHandler()
	handler, err := telegram.NewHandler(
		&registerUser,
		machine,
		root.CreateGetUserOrdersQueryHandler(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create telegram handler: %v", err)
	}

	bot, err := telegram.NewBot(configs.TelegramBotToken, handler, logger)
	if err != nil {
		log.Fatalf("Failed to create telegram bot: %v", err)
	}

	jobManager := jobs.NewJobManager(machine, configs.SessionTTL, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("telegram bot stopped", slog.Any("error", err))
			stop()
		}
	}()

	startWebServer(ctx, &root, configs.HTTPPort)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&userrepo.UserDTO{}, &orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(ctx context.Context, root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateGetOrdersByStatusQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
		e.Logger.Info(err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken: goDotEnvVariable("TELEGRAM_BOT_TOKEN"),
		GoogleMapsAPIKey: goDotEnvVariable("GOOGLE_MAPS_API_KEY"),
		DefaultCity:      envOrDefault("DEFAULT_CITY", "Новосибирск"),
		BasePriceRub:     envFloat("BASE_PRICE_RUB", 500),
		PricePerKmRub:    envFloat("PRICE_PER_KM_RUB", 35),
		PricePerKgRub:    envFloat("PRICE_PER_KG_RUB", 2),
		SessionTTL:       envDuration("SESSION_TTL", 30*time.Minute),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid float in %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return value
}
