package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/astravine/mirelle/internal/api"
	"github.com/astravine/mirelle/internal/db"
	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/i18n"
	"github.com/astravine/mirelle/internal/models"
	"github.com/astravine/mirelle/internal/offline"
	"github.com/astravine/mirelle/internal/predict"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	dataDir := getEnv("DATA_DIR", "data")
	dbPath := getEnv("DB_PATH", filepath.Join(dataDir, "mirelle.db"))
	port := getEnv("PORT", "8080")
	defaultLanguage := getEnv("DEFAULT_LANGUAGE", "en")
	geminiKey := getEnv("GEMINI_API_KEY", "")
	geminiBaseURL := getEnv("GEMINI_BASE_URL", "")
	predictionURL := getEnv("PREDICTION_URL", "http://localhost:8000/predict")
	drainInterval := getEnvDuration("SYNC_INTERVAL", 15*time.Second)

	if geminiKey == "" {
		log.Printf("GEMINI_API_KEY is not set; generative endpoints will fail")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	i18nManager, err := i18n.NewManager(defaultLanguage)
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	repos := db.NewRepositories(database)
	probe := db.NewHealthProbe(database)

	storage, err := offline.NewFileStorage(filepath.Join(dataDir, "queue"))
	if err != nil {
		log.Fatalf("offline storage init failed: %v", err)
	}
	queue := offline.NewQueue(
		storage,
		offline.LogStoreFunc(func(_ context.Context, entry models.LogEntry) error {
			return repos.Logs.Create(&entry)
		}),
		probe,
		offline.NotifierFunc(func(count int) {
			log.Printf("offline queue: synced %d buffered log(s)", count)
		}),
	)

	gateway := gemini.NewGateway(gemini.NewClient(geminiKey, geminiBaseURL))
	predictor := predict.NewClient(predictionURL)

	handler := api.NewHandler(repos, queue, probe, gateway, predictor, i18nManager, location)

	app := fiber.New(fiber.Config{
		AppName:               "Mirelle",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	offline.NewWatcher(probe, queue, drainInterval).Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Mirelle listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	log.Printf("invalid %s %q, using %s", key, value, fallback)
	return fallback
}
