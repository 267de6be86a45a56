package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/B-T-Group/renda-sua-sub003/cmd"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/accountrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/holdrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/B-T-Group/renda-sua-sub003/internal/adapters/out/postgres/topuprepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	jobManager := app.CreateJobManager(configs)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:                    os.Getenv("HTTP_PORT"),
		DBHost:                      os.Getenv("DB_HOST"),
		DBPort:                      os.Getenv("DB_PORT"),
		DBUser:                      os.Getenv("DB_USER"),
		DBPassword:                  os.Getenv("DB_PASSWORD"),
		DBName:                      os.Getenv("DB_NAME"),
		DBSslMode:                   os.Getenv("DB_SSLMODE"),
		HoldPercentage:              envOrDefault("HOLD_PERCENTAGE", "80"),
		ChargePercentage:            envOrDefault("CHARGE_PERCENTAGE", "3.5"),
		PaymentBaseURL:              os.Getenv("PAYMENT_BASE_URL"),
		PaymentAPIKey:               os.Getenv("PAYMENT_API_KEY"),
		TopupReconciliationSchedule: envOrDefault("TOPUP_RECONCILIATION_SCHEDULE", "0 * * * * *"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&holdrepo.OrderHoldDTO{},
		&accountrepo.AgentAccountDTO{},
		&topuprepo.TopupAttemptDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
