package config

import (
	"strings"

	"hotel-management/utils"
)

// Config is everything main needs, read once from the environment.
type Config struct {
	Port string

	// mysql (default), postgres or sqlite
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	DBLogLevel  string

	CORSOrigins    string
	TrustedProxies string
	SeedDemoData bool

	ReservationRatePerMinute int
	ReservationRateBurst     int

	Mail        utils.MailConfig
	FrontendURL string
}

func FromEnv() Config {
	driver := strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql"))

	dbURL := strings.TrimSpace(utils.EnvOrDefault("MYSQL_URL", ""))
	if dbURL == "" {
		dbURL = strings.TrimSpace(utils.EnvOrDefault("DATABASE_URL", ""))
	}

	return Config{
		Port: utils.EnvOrDefault("PORT", "8080"),

		DBDriver:    driver,
		DatabaseURL: dbURL,
		DBHost:      utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		DBPort:      utils.EnvOrDefault("DB_PORT", defaultPort(driver)),
		DBUser:      utils.EnvOrDefault("DB_USER", "root"),
		DBPass:      utils.EnvOrDefault("DB_PASS", ""),
		DBName:      utils.EnvOrDefault("DB_NAME", "hotel_db"),
		DBLogLevel:  utils.EnvOrDefault("DB_LOG_LEVEL", "warn"),

		CORSOrigins:    utils.EnvOrDefault("CORS_ORIGINS", ""),
		TrustedProxies: utils.EnvOrDefault("TRUSTED_PROXIES", ""),
		SeedDemoData: utils.EnvBool("SEED_DEMO_DATA", false),

		ReservationRatePerMinute: utils.EnvInt("RESERVATION_RATE_PER_MINUTE", 30),
		ReservationRateBurst:     utils.EnvInt("RESERVATION_RATE_BURST", 5),

		Mail: utils.MailConfig{
			Host:     utils.EnvOrDefault("SMTP_HOST", ""),
			Port:     utils.EnvOrDefault("SMTP_PORT", ""),
			Username: utils.EnvOrDefault("SMTP_USERNAME", ""),
			Password: utils.EnvOrDefault("SMTP_PASSWORD", ""),
			FromName: utils.EnvOrDefault("SMTP_FROM_NAME", "Hotel Reservations"),
		},
		FrontendURL: utils.EnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func defaultPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}
