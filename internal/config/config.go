package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Invite   InviteConfig   `yaml:"invite"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Limits   LimitsConfig   `yaml:"limits"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// SessionConfig holds cookie-session and password settings.
type SessionConfig struct {
	CookieName       string        `yaml:"cookie_name"        env:"SESSION_COOKIE_NAME"        env-default:"session"`
	TTL              time.Duration `yaml:"ttl"                env:"SESSION_TTL"                env-default:"720h"`
	CookieSecure     bool          `yaml:"cookie_secure"      env:"SESSION_COOKIE_SECURE"      env-default:"true"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"SESSION_PASSWORD_HASH_COST" env-default:"12"`
}

// ScheduleConfig holds recurring-schedule settings. ReferenceZone is the
// fixed IANA zone all event and slot times are authored in.
type ScheduleConfig struct {
	ReferenceZone string `yaml:"reference_zone" env:"SCHEDULE_REFERENCE_ZONE" env-default:"Europe/London"`
}

// InviteConfig holds invitation token settings.
type InviteConfig struct {
	TTL time.Duration `yaml:"ttl" env:"INVITE_TTL" env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LimitsConfig holds rate limiting settings.
type LimitsConfig struct {
	AuthPerMinute int `yaml:"auth_per_minute" env:"LIMITS_AUTH_PER_MINUTE" env-default:"10"`
	APIPerMinute  int `yaml:"api_per_minute"  env:"LIMITS_API_PER_MINUTE"  env-default:"120"`
}

// CleanupConfig holds settings for the in-process purge of expired sessions
// and invitation tokens.
type CleanupConfig struct {
	Enabled bool   `yaml:"enabled" env:"CLEANUP_ENABLED" env-default:"true"`
	Spec    string `yaml:"spec"    env:"CLEANUP_SPEC"    env-default:"@hourly"`
}
