package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Game     GameConfig
}

// AppConfig holds application-level settings
type AppConfig struct {
	Env  string
	Addr string
	Name string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level                    string
	Format                   string
	SQLThresholdMilliSeconds int
}

// FreeSpinsConfig mirrors spec.md §6 FREE_SPINS.* knobs.
type FreeSpinsConfig struct {
	Scatter4Plus    int
	RetriggerSpins  int
	BuyFeatureCost  float64
	BuyFeatureSpins int
}

// RandomMultiplierConfig mirrors RANDOM_MULTIPLIER.* (base-random phase).
type RandomMultiplierConfig struct {
	TriggerChance  float64
	MinWinRequired float64
}

// CascadeRandomMultiplierConfig mirrors CASCADE_RANDOM_MULTIPLIER.* (cascade-random phase).
type CascadeRandomMultiplierConfig struct {
	TriggerChance  float64
	MinMultipliers int
	MaxMultipliers int
}

// GameConfig holds game-specific settings, including the spin-pipeline
// constants enumerated in spec.md §6.
type GameConfig struct {
	MinBet           float64
	MaxBet           float64
	BetStep          float64
	DefaultBalance   float64
	TargetRTP        float64
	MaxWinMultiplier int

	Cols     int
	Rows     int
	MinMatch int

	ScatterChance float64

	Profile string // "standard" | "boosted" - swaps weight/chance table at construction

	FreeSpins               FreeSpinsConfig
	RandomMultiplier        RandomMultiplierConfig
	CascadeRandomMultiplier CascadeRandomMultiplierConfig

	// SkipPersistence is a dev-only flag loaded from SKIP_PERSISTENCE; no
	// component in this module reads it.
	SkipPersistence bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Addr: getEnv("APP_ADDR", ":8080"),
			Name: getEnv("APP_NAME", "SlotMachine"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "slotmachine"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level:                    getEnv("LOG_LEVEL", "debug"),
			Format:                   getEnv("LOG_FORMAT", "json"),
			SQLThresholdMilliSeconds: getEnvAsInt("LOG_SQL_THRESHOLD_MILLI_SECONDS", 200),
		},
		Game: GameConfig{
			MinBet:           getEnvAsFloat("MIN_BET", 0.20),
			MaxBet:           getEnvAsFloat("MAX_BET", 1000.00),
			BetStep:          getEnvAsFloat("BET_STEP", 0.20),
			DefaultBalance:   getEnvAsFloat("DEFAULT_BALANCE", 100000.00),
			TargetRTP:        getEnvAsFloat("RTP_TARGET", 0.965),
			MaxWinMultiplier: getEnvAsInt("MAX_WIN_MULTIPLIER", 5000),

			Cols:     getEnvAsInt("COLS", 6),
			Rows:     getEnvAsInt("ROWS", 5),
			MinMatch: getEnvAsInt("MIN_MATCH", 8),

			ScatterChance: getEnvAsFloat("SCATTER_CHANCE", 0.012),

			Profile: getEnv("GAME_PROFILE", "standard"),

			FreeSpins: FreeSpinsConfig{
				Scatter4Plus:    getEnvAsInt("FREE_SPINS_SCATTER_4_PLUS", 15),
				RetriggerSpins:  getEnvAsInt("FREE_SPINS_RETRIGGER_SPINS", 5),
				BuyFeatureCost:  getEnvAsFloat("FREE_SPINS_BUY_FEATURE_COST", 100.0),
				BuyFeatureSpins: getEnvAsInt("FREE_SPINS_BUY_FEATURE_SPINS", 15),
			},
			RandomMultiplier: RandomMultiplierConfig{
				TriggerChance:  getEnvAsFloat("RANDOM_MULTIPLIER_TRIGGER_CHANCE", 0.08),
				MinWinRequired: getEnvAsFloat("RANDOM_MULTIPLIER_MIN_WIN_REQUIRED", 0.01),
			},
			CascadeRandomMultiplier: CascadeRandomMultiplierConfig{
				TriggerChance:  getEnvAsFloat("CASCADE_RANDOM_MULTIPLIER_TRIGGER_CHANCE", 0.15),
				MinMultipliers: getEnvAsInt("CASCADE_RANDOM_MULTIPLIER_MIN_MULTIPLIERS", 1),
				MaxMultipliers: getEnvAsInt("CASCADE_RANDOM_MULTIPLIER_MAX_MULTIPLIERS", 3),
			},

			SkipPersistence: getEnvAsBool("SKIP_PERSISTENCE", false),
		},
	}

	if cfg.Database.Password == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
