package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const (
	defaultJWTSecret    = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry    = time.Hour
	defaultJWTIssuer    = "bank-dashboard"
	defaultRefreshTTL   = 7 * 24 * time.Hour
	defaultLoginRate    = "5-M"
	defaultMovementRate = "30-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	RunMigrations  bool
	MigrationsPath string
	SeedDemoData   bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	LoginRateLimit    string
	MovementRateLimit string

	CORSAllowedOrigins []string

	// Movement events; an empty AMQPURL disables publishing.
	AMQPURL             string
	MovementEventsQueue string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", defaultRefreshTTL.String())
	v.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	v.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	v.SetDefault("LOGIN_RATE_LIMIT", defaultLoginRate)
	v.SetDefault("MOVEMENT_RATE_LIMIT", defaultMovementRate)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("MOVEMENT_EVENTS_QUEUE", "ledger.movements")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:          strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		SeedDemoData:           v.GetBool("SEED_DEMO_DATA"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		RefreshTokenCookieName: v.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		RefreshTokenCookiePath: v.GetString("REFRESH_TOKEN_COOKIE_PATH"),
		LoginRateLimit:         v.GetString("LOGIN_RATE_LIMIT"),
		MovementRateLimit:      v.GetString("MOVEMENT_RATE_LIMIT"),
		AMQPURL:                v.GetString("AMQP_URL"),
		MovementEventsQueue:    v.GetString("MOVEMENT_EVENTS_QUEUE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = defaultJWTExpiry
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	refreshExpiryStr := v.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil || refreshExpiry <= 0 {
		refreshExpiry = defaultRefreshTTL
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry.String())
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry
	if cfg.RefreshTokenCookieName == "" {
		cfg.RefreshTokenCookieName = "rtid"
	}
	if cfg.RefreshTokenCookiePath == "" {
		cfg.RefreshTokenCookiePath = "/api/v1/auth"
	}

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = defaultLoginRate
	}
	if cfg.MovementRateLimit == "" {
		cfg.MovementRateLimit = defaultMovementRate
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StoragePostgres)
		}
	case StorageMemory:
		if cfg.IsProduction {
			log.Println("Warning: in-memory storage selected in production; data will not survive a restart.")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %q or %q)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}
