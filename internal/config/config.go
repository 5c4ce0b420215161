package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Password modes
const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Identity  IdentityConfig
	GenAI     GenAIConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StoreConfig selects the key-value backend and the keys each repository owns
type StoreConfig struct {
	Backend        string
	MemoryCapacity int // in bytes, <= 0 means unbounded
	RedisPrefix    string
	CategoriesKey  string
	ProductsKey    string
	UsersKey       string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	Schema       string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig is the single privileged account
type AdminConfig struct {
	Username string
	Password string
}

type IdentityConfig struct {
	PasswordMode string
}

type GenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	Window            time.Duration
}

// IsDevelopment reports whether the server runs outside production
func (c ServerConfig) IsDevelopment() bool {
	return c.Env != "production"
}

// Addr returns host:port for the Redis client
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func Load() *Config {
	// .env.local overrides are optional and never override real environment
	if err := godotenv.Load(".env.local"); err == nil {
		log.Printf("Loaded overrides from .env.local")
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("STORE_MEMORY_CAPACITY", 5*1024*1024)
	v.SetDefault("STORE_REDIS_PREFIX", "")
	v.SetDefault("STORE_CATEGORIES_KEY", "ggsale_categories")
	v.SetDefault("STORE_PRODUCTS_KEY", "ggsale_products")
	v.SetDefault("STORE_USERS_KEY", "ggsale_users")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ADMIN_USERNAME", "Sherni134356")
	v.SetDefault("ADMIN_PASSWORD", "Sherni134356")
	v.SetDefault("IDENTITY_PASSWORD_MODE", PasswordModeBcrypt)
	v.SetDefault("GENAI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GENAI_TIMEOUT", 20*time.Second)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(v.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Backend:        strings.ToLower(v.GetString("STORE_BACKEND")),
			MemoryCapacity: v.GetInt("STORE_MEMORY_CAPACITY"),
			RedisPrefix:    v.GetString("STORE_REDIS_PREFIX"),
			CategoriesKey:  v.GetString("STORE_CATEGORIES_KEY"),
			ProductsKey:    v.GetString("STORE_PRODUCTS_KEY"),
			UsersKey:       v.GetString("STORE_USERS_KEY"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Database:     v.GetString("DB_DATABASE"),
			Schema:       v.GetString("DB_SCHEMA"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Identity: IdentityConfig{
			PasswordMode: strings.ToLower(v.GetString("IDENTITY_PASSWORD_MODE")),
		},
		GenAI: GenAIConfig{
			APIKey:  v.GetString("GENAI_API_KEY"),
			Model:   v.GetString("GENAI_MODEL"),
			Timeout: v.GetDuration("GENAI_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           v.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerWindow: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:            v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
