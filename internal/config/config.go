package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	DBPoolSize  int
	JWTSecret   string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = &Config{
			HTTPPort:    getEnv("HTTP_PORT", "8080"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			DBPoolSize:  getIntEnv("DB_POOL_SIZE", 25),
			JWTSecret:   os.Getenv("JWT_SECRET"),
		}
	})
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
