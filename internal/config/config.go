package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMongoDB = "mongodb"
	StorageSQLite  = "sqlite"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Auth    AuthConfig
	Storage StorageConfig
	MongoDB MongoDBConfig
	SQLite  SQLiteConfig
	Weather WeatherConfig
	Sheets  SheetsConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// AuthConfig holds optional basic auth credentials. Auth is disabled unless both are set.
type AuthConfig struct {
	User     string
	Password string
}

// Enabled reports whether basic auth should guard the API.
func (a AuthConfig) Enabled() bool {
	return a.User != "" && a.Password != ""
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SQLiteConfig holds settings for the embedded SQLite store.
type SQLiteConfig struct {
	Path string
}

// WeatherConfig contains the Open-Meteo endpoints and the fixed location queried.
type WeatherConfig struct {
	ForecastURL   string
	AirQualityURL string
	Latitude      float64
	Longitude     float64
	Timezone      string
	Timeout       time.Duration
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether a spreadsheet export target is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ExportConfig holds scheduler-related settings.
type ExportConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	latitude, err := getenvFloat("WEATHER_LATITUDE", 35.6895)
	if err != nil {
		return nil, err
	}
	longitude, err := getenvFloat("WEATHER_LONGITUDE", 139.6917)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getenvWithDefault("WEATHER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("WEATHER_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			User:     os.Getenv("BASIC_AUTH_USER"),
			Password: os.Getenv("BASIC_AUTH_PASSWORD"),
		},
		Storage: StorageConfig{
			Driver: getenvWithDefault("STORAGE_DRIVER", StorageSQLite),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "dailylog"),
		},
		SQLite: SQLiteConfig{
			Path: getenvWithDefault("SQLITE_PATH", "dailylog.db"),
		},
		Weather: WeatherConfig{
			ForecastURL:   getenvWithDefault("WEATHER_FORECAST_URL", "https://api.open-meteo.com/v1"),
			AirQualityURL: getenvWithDefault("WEATHER_AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1"),
			Latitude:      latitude,
			Longitude:     longitude,
			Timezone:      getenvWithDefault("WEATHER_TIMEZONE", "Asia/Tokyo"),
			Timeout:       timeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Records!A1"),
		},
		Export: ExportConfig{
			CronSchedule: os.Getenv("EXPORT_CRON_SCHEDULE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORAGE_DRIVER=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case StorageSQLite:
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Weather.ForecastURL == "" || c.Weather.AirQualityURL == "" {
		return errors.New("WEATHER_FORECAST_URL and WEATHER_AIR_QUALITY_URL must not be empty")
	}

	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		return errors.New("WEATHER_LATITUDE must be within [-90, 90]")
	}

	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		return errors.New("WEATHER_LONGITUDE must be within [-180, 180]")
	}

	if c.Weather.Timeout <= 0 {
		return errors.New("WEATHER_TIMEOUT must be positive")
	}

	if c.Export.CronSchedule != "" && !c.Sheets.Enabled() {
		return errors.New("EXPORT_CRON_SCHEDULE requires GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID")
	}

	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_RANGE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
