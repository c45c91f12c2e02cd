package config

import "os"

type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	DataDir     string
}

// Load reads configuration from the environment. An empty DATABASE_URL
// means the remote backend is not configured and the app runs guest-only.
func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:        getEnv("PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", "./data"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
