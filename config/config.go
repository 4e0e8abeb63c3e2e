package config

import (
	"log/slog"
	"os"
	"strings"

	"restaurant-pos-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs the informational login tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_pos_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// AllowedOrigins returns the CORS origin allow-list. Requests from any
// other origin are rejected at the transport boundary.
func AllowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return []string{
		"http://localhost:5173",
		"http://localhost:5176",
		"http://localhost:3000",
	}
}

// InitDB opens the database selected by DB_DRIVER (sqlite by default,
// postgres in production) and migrates the schema.
func InitDB() {
	dialector := openDialector()

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(DB); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database connected and migrated", "driver", getEnv("DB_DRIVER", "sqlite"))
}

func openDialector() gorm.Dialector {
	switch getEnv("DB_DRIVER", "sqlite") {
	case "postgres":
		dsn := getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres dbname=restaurant sslmode=disable")
		return postgres.Open(dsn)
	default:
		return sqlite.Open(getEnv("SQLITE_PATH", "restaurant_pos.db"))
	}
}

// Migrate applies the schema to the given connection. Exposed so the test
// suite can migrate its in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
}
