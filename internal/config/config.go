package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	Addr        string
	DatabaseDSN string
	AutoMigrate bool

	AdminPassword     string
	AdminPasswordHash string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	// ProtectWrites puts project mutations behind the admin token.
	ProtectWrites bool
	EnableMetrics bool
	EnableSwagger bool
	CORSOrigins   []string

	LogLevel  string
	LogFormat string

	// parseErrs holds values Load could not interpret; Validate reports them.
	parseErrs []error
}

// Load reads configuration from a .env file (when present) and the
// environment. Unparseable values keep their defaults and are reported by
// Validate.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISS", "portfolio-api")
	v.SetDefault("JWT_AUD", "portfolio-api")
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("PROTECT_WRITES", true)
	v.SetDefault("ENABLE_METRICS", false)
	v.SetDefault("ENABLE_SWAGGER", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	config := &Config{
		Environment:       v.GetString("ENVIRONMENT"),
		Addr:              v.GetString("ADDR"),
		DatabaseDSN:       v.GetString("DB_DSN"),
		AutoMigrate:       v.GetBool("AUTO_MIGRATE"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISS"),
		JWTAudience:       v.GetString("JWT_AUD"),
		JWTExpiry:         24 * time.Hour,
		ProtectWrites:     v.GetBool("PROTECT_WRITES"),
		EnableMetrics:     v.GetBool("ENABLE_METRICS"),
		EnableSwagger:     v.GetBool("ENABLE_SWAGGER"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
	}

	if expiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY")); err == nil {
		config.JWTExpiry = expiry
	} else {
		config.parseErrs = append(config.parseErrs, fmt.Errorf("JWT_EXPIRY: %w", err))
	}

	return config
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return c.parseErrs[0]
	}
	if c.DatabaseDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET cannot be empty")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters long")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed from the default in production")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISS cannot be empty")
	}
	if c.JWTAudience == "" {
		return errors.New("JWT_AUD cannot be empty")
	}
	if c.JWTExpiry < time.Minute || c.JWTExpiry > 30*24*time.Hour {
		return fmt.Errorf("JWT_EXPIRY must be between 1m and 720h, got %v", c.JWTExpiry)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadAndValidate loads the configuration and validates it.
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
