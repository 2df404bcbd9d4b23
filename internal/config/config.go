package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Development token secrets. They are rejected when APP_ENV is production.
const (
	devStudentJWTSecret = "dev-student-secret"
	devDeptJWTSecret    = "dev-dept-secret"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Identity  IdentityConfig
	Lifecycle LifecycleConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"laundry-service"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8080"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// PostgresConfig holds DB connection values. An empty DSN selects the in-memory store.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr                string `env:"REDIS_ADDR"`
	Password            string `env:"REDIS_PASSWORD"`
	DB                  int    `env:"REDIS_DB" envDefault:"0"`
	DashboardTTLSeconds int    `env:"REDIS_DASHBOARD_TTL_SECONDS" envDefault:"30"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines the two token trust domains and the shared department credential.
type AuthConfig struct {
	StudentJWTSecret       string `env:"AUTH_JWT_SECRET" envDefault:"dev-student-secret"`
	StudentTokenTTLMinutes int    `env:"AUTH_STUDENT_TOKEN_TTL_MINUTES" envDefault:"60"`
	DeptJWTSecret          string `env:"AUTH_DEPT_JWT_SECRET" envDefault:"dev-dept-secret"`
	DeptTokenTTLHours      int    `env:"AUTH_DEPT_TOKEN_TTL_HOURS" envDefault:"168"`
	BcryptCost             int    `env:"AUTH_BCRYPT_COST" envDefault:"10"`
	DeptEmail              string `env:"DEPT_EMAIL"`
	DeptPassword           string `env:"DEPT_PASSWORD"`
}

// IdentityConfig holds registration rules.
type IdentityConfig struct {
	EmailDomain string `env:"IDENTITY_EMAIL_DOMAIN" envDefault:"chitkara.edu.in"`
}

// LifecycleConfig toggles the status transition policy.
type LifecycleConfig struct {
	StrictTransitions bool `env:"LIFECYCLE_STRICT_TRANSITIONS" envDefault:"false"`
}

// Load reads configuration from .env and the process environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Auth.StudentJWTSecret == "" || c.Auth.DeptJWTSecret == "" {
		return errors.New("token secrets must not be empty")
	}
	if c.Auth.StudentJWTSecret == c.Auth.DeptJWTSecret {
		return errors.New("student and department token secrets must differ")
	}
	if c.App.IsProduction() &&
		(c.Auth.StudentJWTSecret == devStudentJWTSecret || c.Auth.DeptJWTSecret == devDeptJWTSecret) {
		return errors.New("AUTH_JWT_SECRET and AUTH_DEPT_JWT_SECRET must be set in production")
	}
	if c.Identity.EmailDomain == "" {
		return errors.New("IDENTITY_EMAIL_DOMAIN must not be empty")
	}
	return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(a.Env), "production")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// StudentTokenTTL returns the lifetime of student tokens.
func (a AuthConfig) StudentTokenTTL() time.Duration {
	if a.StudentTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.StudentTokenTTLMinutes) * time.Minute
}

// DeptTokenTTL returns the lifetime of department tokens.
func (a AuthConfig) DeptTokenTTL() time.Duration {
	if a.DeptTokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(a.DeptTokenTTLHours) * time.Hour
}

// DashboardTTL returns how long dashboard snapshots stay cached. Zero disables caching.
func (r RedisConfig) DashboardTTL() time.Duration {
	if r.DashboardTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.DashboardTTLSeconds) * time.Second
}
