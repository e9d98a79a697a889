// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Firebase    FirebaseConfig
	Listings    ListingConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Log         LogConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	MaxBodyMB    int64
}

type DatabaseConfig struct {
	Driver       string // postgres | sqlite
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AuthConfig struct {
	Provider       string // firebase | jwt
	JWTSecret      string
	AccessTokenTTL int // in hours
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsJSON string
	CredentialsFile string
}

type ListingConfig struct {
	MaxImageKB     int64
	DefaultCollege string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string // text | json
}

type I18nConfig struct {
	DefaultLocale string
}

// Load reads .env (if any), an optional config file and the environment.
// Keys map to environment variables by upper-casing and replacing dots with
// underscores, so "db.driver" is read from DB_DRIVER.
func Load(v *viper.Viper) (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	config := &Config{
		Environment: v.GetString("environment"),
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Host:         v.GetString("server.host"),
			ReadTimeout:  v.GetInt("server.read_timeout"),
			WriteTimeout: v.GetInt("server.write_timeout"),
			IdleTimeout:  v.GetInt("server.idle_timeout"),
			MaxBodyMB:    v.GetInt64("server.max_body_mb"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("db.driver")),
			Host:         v.GetString("db.host"),
			Port:         v.GetString("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			Database:     v.GetString("db.name"),
			SSLMode:      v.GetString("db.ssl_mode"),
			SQLitePath:   v.GetString("db.sqlite_path"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
			MaxLifetime:  v.GetInt("db.max_lifetime"),
			LogLevel:     v.GetString("db.log_level"),
		},
		Auth: AuthConfig{
			Provider:       strings.ToLower(v.GetString("auth.provider")),
			JWTSecret:      v.GetString("jwt.secret"),
			AccessTokenTTL: v.GetInt("jwt.access_ttl"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       v.GetString("firebase.project_id"),
			CredentialsJSON: v.GetString("firebase.credentials_json"),
			CredentialsFile: v.GetString("firebase.credentials_file"),
		},
		Listings: ListingConfig{
			MaxImageKB:     v.GetInt64("listings.max_image_kb"),
			DefaultCollege: v.GetString("listings.default_college"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("rate_limit.rps"),
			Burst:             v.GetInt("rate_limit.burst"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		I18n: I18nConfig{
			DefaultLocale: v.GetString("default_locale"),
		},
	}

	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.max_body_mb", 50) // three inline images per request

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "book_exchange")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.sqlite_path", "./data/book_exchange.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 25)
	v.SetDefault("db.max_lifetime", 300)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("auth.provider", "firebase")
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.access_ttl", 24)

	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_json", "")
	v.SetDefault("firebase.credentials_file", "")

	v.SetDefault("listings.max_image_kb", 5*1024)
	v.SetDefault("listings.default_college", "Vignan Institute Of Information Technology")

	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cors.allowed_origins", "*")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("default_locale", "en")
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Auth.Provider {
	case "firebase", "jwt":
	default:
		return fmt.Errorf("unsupported auth provider %q", c.Auth.Provider)
	}

	if c.Environment != "production" {
		return nil
	}

	if c.Auth.Provider == "jwt" && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Auth.Provider == "firebase" && c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required in production")
	}

	if c.Database.Driver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
