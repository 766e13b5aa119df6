package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv         = "development"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultPriceWindow = 15 * time.Minute
	defaultSimSeed     = 1984
	defaultSimTrades   = 200
	defaultSimStart    = "1929-10-24T09:30:00Z"
	defaultBatchSize   = 50
	defaultReport      = "text"
)

// Config keeps the runtime configuration of the gbce command.
type Config struct {
	Env    string
	Log    LogConfig
	Market MarketConfig
	Sim    SimulationConfig
	Feed   FeedConfig
	Report ReportConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// MarketConfig holds pricing settings.
type MarketConfig struct {
	PriceWindow time.Duration
}

// SimulationConfig controls the generated trade stream.
type SimulationConfig struct {
	Seed   int64
	Trades int
	Start  time.Time
}

// FeedConfig controls trade batching.
type FeedConfig struct {
	BatchSize int
}

// ReportConfig selects the report output.
type ReportConfig struct {
	Format string
}

// LoadDotEnv reads variables from the given .env files into the environment.
// Missing files are not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	window, err := getDuration("PRICE_WINDOW", defaultPriceWindow)
	if err != nil {
		return nil, fmt.Errorf("parse PRICE_WINDOW: %w", err)
	}
	if window <= 0 {
		return nil, errors.New("PRICE_WINDOW must be positive")
	}

	seed, err := getInt("SIM_SEED", defaultSimSeed)
	if err != nil {
		return nil, fmt.Errorf("parse SIM_SEED: %w", err)
	}

	trades, err := getInt("SIM_TRADES", defaultSimTrades)
	if err != nil {
		return nil, fmt.Errorf("parse SIM_TRADES: %w", err)
	}
	if trades < 0 {
		return nil, errors.New("SIM_TRADES must not be negative")
	}

	start, err := time.Parse(time.RFC3339, getString("SIM_START", defaultSimStart))
	if err != nil {
		return nil, fmt.Errorf("parse SIM_START: %w", err)
	}

	batchSize, err := getInt("FEED_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, fmt.Errorf("parse FEED_BATCH_SIZE: %w", err)
	}
	if batchSize <= 0 {
		return nil, errors.New("FEED_BATCH_SIZE must be positive")
	}

	logFormat, err := getChoice("LOG_FORMAT", defaultLogFormat, "json", "text")
	if err != nil {
		return nil, err
	}
	reportFormat, err := getChoice("REPORT_FORMAT", defaultReport, "text", "json")
	if err != nil {
		return nil, err
	}

	return &Config{
		Env: getString("APP_ENV", defaultEnv),
		Log: LogConfig{
			Level:  getString("LOG_LEVEL", defaultLogLevel),
			Format: logFormat,
		},
		Market: MarketConfig{PriceWindow: window},
		Sim: SimulationConfig{
			Seed:   int64(seed),
			Trades: trades,
			Start:  start,
		},
		Feed:   FeedConfig{BatchSize: batchSize},
		Report: ReportConfig{Format: reportFormat},
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to duration: %w", key, value, err)
	}
	return parsed, nil
}

func getChoice(key, fallback string, allowed ...string) (string, error) {
	value := strings.ToLower(getString(key, fallback))
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}
