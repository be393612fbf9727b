package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	SMTP      SMTPConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Sheets    SheetsConfig
	Payroll   PayrollConfig
	RateLimit RateLimitConfig
	Cron      CronConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
	MaxConns    int32
	MinConns    int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Version        string
	FrontendURL    string
	AllowedOrigins []string
}

// SMTPConfig holds outbound mail settings. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// StorageConfig selects the object storage backend: local, s3 or cloudinary.
type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

// SheetsConfig enables best-effort Google Sheets sync when SpreadsheetID is set.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
}

// PayrollConfig carries the payroll policy knobs.
type PayrollConfig struct {
	NightDutyRate   decimal.Decimal
	PFRate          decimal.Decimal
	EmployerPFRate  decimal.Decimal
	ESIRate         decimal.Decimal
	ESIWageCeiling  decimal.Decimal
	HRADefaultRate  decimal.Decimal
	ProfessionalTax decimal.Decimal
	TDS             decimal.Decimal
}

type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

type CronConfig struct {
	Enabled         bool
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "nmep_payroll"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		MaxConns:    int32(maxConns),
		MinConns:    int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{config.App.FrontendURL}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@nmep.local"),
		FromName: getEnv("SMTP_FROM_NAME", "NMEP Payroll"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:                getEnv("STORAGE_TYPE", "local"),
		BasePath:            getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:             getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3Region:            getEnv("S3_REGION", "auto"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:         getEnv("S3_PUBLIC_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "nmep"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisTTL, err := time.ParseDuration(getEnv("REDIS_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_CACHE_TTL: %w", err)
	}
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Username: getEnv("REDIS_USER", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		TTL:      redisTTL,
	}

	// Google Sheets configuration
	config.Sheets = SheetsConfig{
		SpreadsheetID:   getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", ""),
		CredentialsJSON: getEnv("GOOGLE_SHEETS_CREDENTIALS_JSON", ""),
	}

	// Payroll policy
	payroll, err := loadPayrollConfig()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	authPerMinute, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH_PER_MINUTE: %w", err)
	}
	authBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH_BURST: %w", err)
	}
	config.RateLimit = RateLimitConfig{
		AuthPerMinute: authPerMinute,
		AuthBurst:     authBurst,
	}

	cleanupInterval, err := time.ParseDuration(getEnv("CRON_CLEANUP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_CLEANUP_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{
		Enabled:         getEnvBool("CRON_ENABLED", false),
		CleanupInterval: cleanupInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollConfig() (PayrollConfig, error) {
	var cfg PayrollConfig
	fields := []struct {
		key      string
		fallback string
		dst      *decimal.Decimal
	}{
		{"PAYROLL_NIGHT_DUTY_RATE", "200", &cfg.NightDutyRate},
		{"PAYROLL_PF_RATE", "0.12", &cfg.PFRate},
		{"PAYROLL_EMPLOYER_PF_RATE", "0.12", &cfg.EmployerPFRate},
		{"PAYROLL_ESI_RATE", "0.0075", &cfg.ESIRate},
		{"PAYROLL_ESI_WAGE_CEILING", "21000", &cfg.ESIWageCeiling},
		{"PAYROLL_HRA_DEFAULT_RATE", "0.40", &cfg.HRADefaultRate},
		{"PAYROLL_PROFESSIONAL_TAX", "0", &cfg.ProfessionalTax},
		{"PAYROLL_TDS", "0", &cfg.TDS},
	}

	for _, f := range fields {
		v, err := decimal.NewFromString(getEnv(f.key, f.fallback))
		if err != nil {
			return PayrollConfig{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		if v.IsNegative() {
			return PayrollConfig{}, fmt.Errorf("%s must be non-negative", f.key)
		}
		*f.dst = v
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Storage.Type {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" || c.Storage.S3AccessKey == "" || c.Storage.S3SecretKey == "" {
			return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required for s3 storage")
		}
	case "cloudinary":
		if c.Storage.CloudinaryCloudName == "" || c.Storage.CloudinaryAPIKey == "" || c.Storage.CloudinaryAPISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for cloudinary storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	if c.RateLimit.AuthPerMinute <= 0 || c.RateLimit.AuthBurst <= 0 {
		return fmt.Errorf("rate limit values must be positive")
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
