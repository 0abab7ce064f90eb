package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration shared by the identity, device and gateway services
type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Limits  LimitsConfig
	CORS    CORSConfig
	Gateway GatewayConfig
}

type AppConfig struct {
	Env          string
	IdentityPort string
	DevicePort   string
	GatewayPort  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string
func (d DBConfig) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode +
		" TimeZone=Asia/Seoul"
}

// URL returns the PostgreSQL connection URL (for golang-migrate)
func (d DBConfig) URL() string {
	return "postgres://" + d.User + ":" + d.Password +
		"@" + d.Host + ":" + d.Port +
		"/" + d.Name + "?sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	ExpiresIn        string // TTL string like "15m"
	RefreshExpiresIn string // TTL string like "7d"
}

type LimitsConfig struct {
	MaxProfilesPerUser int
}

type CORSConfig struct {
	Origins []string
}

type GatewayConfig struct {
	IdentityServiceURL string
	DeviceServiceURL   string
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if not exists - e.g. in Docker)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading from environment variables")
	}

	return &Config{
		App: AppConfig{
			Env:          getEnv("APP_ENV", "development"),
			IdentityPort: getEnv("IDENTITY_PORT", "8081"),
			DevicePort:   getEnv("DEVICE_PORT", "8082"),
			GatewayPort:  getEnv("GATEWAY_PORT", "8080"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "vidstream"),
			Password: getEnv("DB_PASSWORD", "vidstream"),
			Name:     getEnv("DB_NAME", "vidstream"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "dev-access-secret"),
			RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret"),
			ExpiresIn:        getEnv("JWT_EXPIRES_IN", "15m"),
			RefreshExpiresIn: getEnv("JWT_REFRESH_EXPIRES_IN", "7d"),
		},
		Limits: LimitsConfig{
			MaxProfilesPerUser: getEnvInt("MAX_PROFILES_PER_USER", 5),
		},
		CORS: CORSConfig{
			Origins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		},
		Gateway: GatewayConfig{
			IdentityServiceURL: getEnv("IDENTITY_SERVICE_URL", "http://localhost:8081"),
			DeviceServiceURL:   getEnv("DEVICE_SERVICE_URL", "http://localhost:8082"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
