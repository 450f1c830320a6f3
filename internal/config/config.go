package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret      string
	AccessTokenTTL string

	// Срок подписки на журнал (биллинговый период): end_at = now + период.
	SubscriptionPeriod string

	RedisAddr     string
	RedisPassword string
	RedisDB       string
	CacheTTL      string

	Log      string
	LogLevel string
	Env      string // dev|prod

	MigrationsPath string

	// Лимит на /api/auth/* — запросов в секунду и burst на один IP
	AuthRateLimit string
	AuthRateBurst string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "3001"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "24h"),

		SubscriptionPeriod: def(os.Getenv("SUBSCRIPTION_PERIOD"), "720h"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       def(os.Getenv("REDIS_DB"), "0"),
		CacheTTL:      def(os.Getenv("CACHE_TTL"), "2m"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		MigrationsPath: def(os.Getenv("MIGRATIONS_PATH"), "migrations"),

		AuthRateLimit: def(os.Getenv("AUTH_RATE_LIMIT"), "5"),
		AuthRateBurst: def(os.Getenv("AUTH_RATE_BURST"), "10"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	// Redis — предупреждение, сервис умеет работать без кеша
	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is empty, response cache disabled")
	}

	if _, perr := time.ParseDuration(c.SubscriptionPeriod); perr != nil {
		warnings = append(warnings, "SUBSCRIPTION_PERIOD is not a valid duration, using 720h")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 3001")
	}

	return warnings, nil
}

// GetSubscriptionPeriod — биллинговый период, дефолт 720h (30 суток).
func (c *Config) GetSubscriptionPeriod() time.Duration {
	d, err := time.ParseDuration(c.SubscriptionPeriod)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}

func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
