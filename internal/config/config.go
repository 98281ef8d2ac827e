package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	Addr         string        `yaml:"addr" envconfig:"ADDR"`
	Port         string        `yaml:"-" envconfig:"PORT"`
	Environment  string        `yaml:"environment" envconfig:"APP_ENV"`
	AdminAPIKey  string        `yaml:"admin_api_key" envconfig:"ADMIN_API_KEY" masked:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`

	Database Database `yaml:"database" envconfig:"DB"`
	Sheets   Sheets   `yaml:"sheets" envconfig:"GOOGLE"`
	Cache    Cache    `yaml:"cache" envconfig:"CACHE"`
	Log      Log      `yaml:"log" envconfig:"LOG"`

	EnvFile string `yaml:"env_file" envconfig:"ENV_FILE"`

	Migrate  bool `yaml:"migrate" envconfig:"MIGRATE"` // apply schema migrations at startup
	DemoMode bool `yaml:"-" ignored:"true"`            // load sample data on empty database (set via -demo flag)
}

// Database describes the shared Postgres pool.
type Database struct {
	URL              string        `yaml:"url" envconfig:"URL" masked:"true"`
	Host             string        `yaml:"host" envconfig:"HOST"`
	Port             int           `yaml:"port" envconfig:"PORT"`
	User             string        `yaml:"user" envconfig:"USER"`
	Password         string        `yaml:"password" envconfig:"PASSWORD" masked:"true"`
	Name             string        `yaml:"name" envconfig:"NAME"`
	SSLMode          string        `yaml:"sslmode" envconfig:"SSLMODE"`
	MaxConns         int           `yaml:"max_conns" envconfig:"MAX_CONNS"`
	IdleTimeout      time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT"`
	StatementTimeout time.Duration `yaml:"statement_timeout" envconfig:"STATEMENT_TIMEOUT"`
}

// Sheets holds the Google service account used for the spreadsheet readers.
// Either CredentialsBase64 or ServiceAccountEmail+ServiceAccountPrivateKey is enough.
type Sheets struct {
	CredentialsBase64        string `yaml:"credentials_base64" envconfig:"CREDENTIALS_BASE64" masked:"true"`
	ServiceAccountEmail      string `yaml:"service_account_email" envconfig:"SERVICE_ACCOUNT_EMAIL"`
	ServiceAccountPrivateKey string `yaml:"service_account_private_key" envconfig:"SERVICE_ACCOUNT_PRIVATE_KEY" masked:"true"`
	SpreadsheetID            string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	PauseMs                  int    `yaml:"pause_ms" envconfig:"SHEETS_PAUSE_MS"`
}

type Cache struct {
	DatabaseTTL   time.Duration `yaml:"database_ttl" envconfig:"DATABASE_TTL"`
	SheetsTTL     time.Duration `yaml:"sheets_ttl" envconfig:"SHEETS_TTL"`
	CallStatusTTL time.Duration `yaml:"call_status_ttl" envconfig:"CALL_STATUS_TTL"`
	SweepGrace    time.Duration `yaml:"sweep_grace" envconfig:"SWEEP_GRACE"`
}

type Log struct {
	Level      string `yaml:"level" envconfig:"LEVEL"`
	File       string `yaml:"file" envconfig:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" envconfig:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" envconfig:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" envconfig:"MAX_AGE_DAYS"`
}

// IsProduction reports whether APP_ENV (or the yaml environment) is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads configuration from YAML file, then an optional .env file, and
// overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		Addr:         ":8080",
		Environment:  "development",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		EnvFile:      ".env",
		Database: Database{
			Port:             5432,
			User:             "postgres",
			Name:             "postgres",
			MaxConns:         20,
			IdleTimeout:      30 * time.Second,
			ConnectTimeout:   10 * time.Second,
			StatementTimeout: 30 * time.Second,
		},
		Sheets: Sheets{
			PauseMs: 200,
		},
		Cache: Cache{
			DatabaseTTL:   30 * time.Second,
			SheetsTTL:     20 * time.Second,
			CallStatusTTL: 10 * time.Second,
			SweepGrace:    60 * time.Second,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	// .env only seeds variables that are not already set
	if v := os.Getenv("ENV_FILE"); v != "" {
		cfg.EnvFile = v
	}
	if cfg.EnvFile != "" {
		if _, err := os.Stat(cfg.EnvFile); err == nil {
			if err := godotenv.Load(cfg.EnvFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", cfg.EnvFile, err)
			}
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.Port != "" {
		cfg.Addr = ":" + cfg.Port
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
		if cfg.IsProduction() {
			cfg.Database.SSLMode = "require"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the process cannot start without. Google
// credentials are optional and reported per request instead.
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Host == "" {
		return errors.New("DB_URL or DB_HOST environment variable is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database max_conns must be positive, got %d", c.Database.MaxConns)
	}
	if c.Cache.DatabaseTTL <= 0 || c.Cache.SheetsTTL <= 0 || c.Cache.CallStatusTTL <= 0 {
		return errors.New("cache ttl values must be positive")
	}
	return nil
}

// MissingSheetsVars lists the env var names that keep the spreadsheet
// readers from authenticating. Empty means configured.
func (s Sheets) MissingSheetsVars() []string {
	var missing []string
	if s.CredentialsBase64 == "" {
		if s.ServiceAccountEmail == "" {
			missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
		}
		if s.ServiceAccountPrivateKey == "" {
			missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY")
		}
	}
	if s.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SPREADSHEET_ID")
	}
	return missing
}
