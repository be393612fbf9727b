package config

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.Payroll.NightDutyRate.Equal(decimal.NewFromInt(200)))
	assert.True(t, cfg.Payroll.PFRate.Equal(decimal.RequireFromString("0.12")))
	assert.True(t, cfg.Payroll.ESIRate.Equal(decimal.RequireFromString("0.0075")))
	assert.True(t, cfg.Payroll.ESIWageCeiling.Equal(decimal.NewFromInt(21000)))
	assert.True(t, cfg.Payroll.HRADefaultRate.Equal(decimal.RequireFromString("0.4")))
	assert.False(t, cfg.Cron.Enabled)
}

func TestLoad_PayrollOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAYROLL_NIGHT_DUTY_RATE", "250")
	t.Setenv("PAYROLL_ESI_WAGE_CEILING", "25000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Payroll.NightDutyRate.Equal(decimal.NewFromInt(250)))
	assert.True(t, cfg.Payroll.ESIWageCeiling.Equal(decimal.NewFromInt(25000)))
}

func TestLoad_InvalidPayrollValue(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAYROLL_PF_RATE", "twelve")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativePayrollValue(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAYROLL_TDS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestValidate_StorageBackends(t *testing.T) {
	base := Config{
		Database:  DatabaseConfig{Password: "x"},
		JWT:       JWTConfig{Secret: "x", AccessExpiration: "1h"},
		RateLimit: RateLimitConfig{AuthPerMinute: 1, AuthBurst: 1},
	}

	s3 := base
	s3.Storage = StorageConfig{Type: "s3"}
	assert.Error(t, s3.Validate())

	s3.Storage = StorageConfig{Type: "s3", S3Bucket: "b", S3AccessKey: "a", S3SecretKey: "s"}
	assert.NoError(t, s3.Validate())

	cld := base
	cld.Storage = StorageConfig{Type: "cloudinary", CloudinaryCloudName: "c"}
	assert.Error(t, cld.Validate())

	unknown := base
	unknown.Storage = StorageConfig{Type: "ftp"}
	assert.Error(t, unknown.Validate())
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "payroll", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/payroll?sslmode=disable", cfg.DatabaseURL())
}

func TestConfig_SlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := Config{App: AppConfig{LogLevel: in}}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
