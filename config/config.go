package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is read from the environment, optionally seeded from a dotenv file.
type Config struct {
	DBDriver string // DB_DRIVER: sqlite (default) or mysql
	DBDSN    string // DB_DSN: file path for sqlite, DSN for mysql
	SeedFile string // DB_SEED_FILE: optional SQL run after migration

	Port     string // PORT
	GinMode  string // GIN_MODE
	LogLevel string // LOG_LEVEL

	APIURL      string        // API_URL: base URL the CLI clients call
	HTTPTimeout time.Duration // HTTP_TIMEOUT_SECONDS

	MaxQuantity        int // MAX_QUANTITY: portions allowed per order line
	LoginRatePerMinute int // LOGIN_RATE_PER_MINUTE: per client IP
	RateLimitPerSecond int // RATE_LIMIT_PER_SECOND: all endpoints, per client IP
}

// Load reads the given dotenv files into the environment (or ./.env when none
// is given, if present) and builds a Config from it. Variables already set in
// the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBDSN:    getEnv("DB_DSN", "resteasy.db"),
		SeedFile: os.Getenv("DB_SEED_FILE"),
		Port:     getEnv("PORT", "5000"),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIURL:   strings.TrimRight(getEnv("API_URL", "http://localhost:5000"), "/"),
	}

	var err error
	if cfg.MaxQuantity, err = getInt("MAX_QUANTITY", 9); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMinute, err = getInt("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getInt("RATE_LIMIT_PER_SECOND", 50); err != nil {
		return nil, err
	}
	timeout, err := getInt("HTTP_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("config: DB_DSN must not be empty")
	}
	if c.MaxQuantity < 1 {
		return fmt.Errorf("config: MAX_QUANTITY must be positive, got %d", c.MaxQuantity)
	}
	if c.LoginRatePerMinute < 1 {
		return fmt.Errorf("config: LOGIN_RATE_PER_MINUTE must be positive, got %d", c.LoginRatePerMinute)
	}
	if c.RateLimitPerSecond < 1 {
		return fmt.Errorf("config: RATE_LIMIT_PER_SECOND must be positive, got %d", c.RateLimitPerSecond)
	}
	return nil
}

// InitDB opens the configured database. SQLite connections always enforce
// foreign keys.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBDSN))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == DriverSQLite {
		// SQLite allows one writer at a time.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// SQLiteDSN adds the foreign key pragma to a SQLite DSN unless present.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=1"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}
