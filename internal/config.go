package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	BaseURL        string        `mapstructure:"base_url"`
	AllowedOrigins string        `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// SecurityConfig carries everything the auth core needs: the token signing
// secret and the brute-force lockout knobs. All of it is read once at startup
// and treated as immutable afterwards.
type SecurityConfig struct {
	TokenSecret      string        `mapstructure:"token_secret"`
	TokenDuration    time.Duration `mapstructure:"token_duration"`
	TokenIssuer      string        `mapstructure:"token_issuer"`
	TokenAudience    string        `mapstructure:"token_audience"`
	BCryptCost       int           `mapstructure:"bcrypt_cost"`
	MaxLoginAttempts int           `mapstructure:"max_login_attempts"`
	AttemptCacheTTL  time.Duration `mapstructure:"attempt_cache_ttl"`
	AttemptCacheSize int           `mapstructure:"attempt_cache_size"`
}

type StorageConfig struct {
	UserFolder string `mapstructure:"user_folder"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- ENV FALLBACK -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables (Docker
// style deployments where no config file is mounted).
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Security: SecurityConfig{
			TokenSecret:      getEnv("TOKEN_SECRET", ""),
			TokenDuration:    getEnvAsDuration("TOKEN_DURATION", 120*time.Hour),
			TokenIssuer:      getEnv("TOKEN_ISSUER", "User Portal"),
			TokenAudience:    getEnv("TOKEN_AUDIENCE", "User Portal Client"),
			BCryptCost:       getEnvAsInt("BCRYPT_COST", 10),
			MaxLoginAttempts: getEnvAsInt("MAX_LOGIN_ATTEMPTS", 50),
			AttemptCacheTTL:  getEnvAsDuration("ATTEMPT_CACHE_TTL", 15*time.Minute),
			AttemptCacheSize: getEnvAsInt("ATTEMPT_CACHE_SIZE", 100),
		},
		Storage: StorageConfig{
			UserFolder: getEnv("USER_FOLDER", defaultUserFolder()),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

func defaultUserFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./user-portal/user"
	}
	return home + "/user-portal/user"
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.TokenSecret) < 32 {
		return errors.New("token secret must be at least 32 characters")
	}
	if c.TokenDuration <= 0 {
		return errors.New("token_duration must be positive")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	if c.MaxLoginAttempts < 1 {
		return errors.New("max_login_attempts must be at least 1")
	}
	if c.AttemptCacheTTL <= 0 {
		return errors.New("attempt_cache_ttl must be positive")
	}
	if c.AttemptCacheSize < 1 {
		return errors.New("attempt_cache_size must be at least 1")
	}
	return nil
}
