package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
	Batch    BatchConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll business constants. These have changed
// several times in production, so they are configuration rather than code.
type PayrollConfig struct {
	// PenaltyPerViolation is the flat rupiah deduction applied to the meal
	// and attendance allowances per sick/permission/unexcused occurrence.
	PenaltyPerViolation int64
	// DefaultMonthDivisor is the working-days divisor used when no
	// month-divisor row exists for a month.
	DefaultMonthDivisor int
	// Bonus divisors for the reduced/partial states.
	BonusCompanyHolidayDivisorPieceRate int64
	BonusCompanyHolidayDivisor          int64
	BonusPartialDivisorPieceRate        int64
	// AuditTolerance is the maximum rupiah difference between a recomputed
	// breakdown total and the stored total before the audit view flags the
	// stored figures as stale.
	AuditTolerance int64
	// SyncProcedure is the server-side stored procedure recomputing a
	// month's salary records.
	SyncProcedure string
}

// BatchConfig tunes the bulk import/delete queue.
type BatchConfig struct {
	ImportInitialSize int
	ImportMaxSize     int
	DeleteInitialSize int
	DeleteMaxSize     int
}

func Load() (*Config, error) {
	// Missing .env is fine in containers where everything comes from the
	// environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kurniatex-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Payroll configuration
	penalty, err := getEnvInt64("PAYROLL_PENALTY_PER_VIOLATION", 10000)
	if err != nil {
		return nil, err
	}
	divisor, err := getEnvInt("PAYROLL_DEFAULT_MONTH_DIVISOR", 26)
	if err != nil {
		return nil, err
	}
	bonusLPPieceRate, err := getEnvInt64("PAYROLL_BONUS_LP_DIVISOR_BORONGAN", 8)
	if err != nil {
		return nil, err
	}
	bonusLP, err := getEnvInt64("PAYROLL_BONUS_LP_DIVISOR", 2)
	if err != nil {
		return nil, err
	}
	bonusPartial, err := getEnvInt64("PAYROLL_BONUS_PARTIAL_DIVISOR_BORONGAN", 4)
	if err != nil {
		return nil, err
	}
	tolerance, err := getEnvInt64("PAYROLL_AUDIT_TOLERANCE", 100)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		PenaltyPerViolation:                 penalty,
		DefaultMonthDivisor:                 divisor,
		BonusCompanyHolidayDivisorPieceRate: bonusLPPieceRate,
		BonusCompanyHolidayDivisor:          bonusLP,
		BonusPartialDivisorPieceRate:        bonusPartial,
		AuditTolerance:                      tolerance,
		SyncProcedure:                       getEnv("PAYROLL_SYNC_PROCEDURE", "sync_gaji_bulanan"),
	}

	// Batch queue configuration
	importInitial, err := getEnvInt("BATCH_IMPORT_INITIAL_SIZE", 20)
	if err != nil {
		return nil, err
	}
	importMax, err := getEnvInt("BATCH_IMPORT_MAX_SIZE", 500)
	if err != nil {
		return nil, err
	}
	deleteInitial, err := getEnvInt("BATCH_DELETE_INITIAL_SIZE", 100)
	if err != nil {
		return nil, err
	}
	deleteMax, err := getEnvInt("BATCH_DELETE_MAX_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	config.Batch = BatchConfig{
		ImportInitialSize: importInitial,
		ImportMaxSize:     importMax,
		DeleteInitialSize: deleteInitial,
		DeleteMaxSize:     deleteMax,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.DefaultMonthDivisor <= 0 {
		return fmt.Errorf("PAYROLL_DEFAULT_MONTH_DIVISOR must be positive")
	}
	if c.Payroll.PenaltyPerViolation < 0 {
		return fmt.Errorf("PAYROLL_PENALTY_PER_VIOLATION must not be negative")
	}
	if c.Payroll.BonusCompanyHolidayDivisorPieceRate <= 0 ||
		c.Payroll.BonusCompanyHolidayDivisor <= 0 ||
		c.Payroll.BonusPartialDivisorPieceRate <= 0 {
		return fmt.Errorf("bonus divisors must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value, err := strconv.ParseInt(getEnv(key, strconv.FormatInt(fallback, 10)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
