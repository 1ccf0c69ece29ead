package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	PublicURL   string

	MaxGames      int
	MaxPlayers    int
	GameTTL       time.Duration
	SweepInterval time.Duration
	RateLimit     float64
	RateBurst     int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8010")
	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		PublicURL:   envOrDefault("PUBLIC_URL", "http://localhost:"+port),

		MaxGames:      intOrDefault("MAX_GAMES", 50),
		MaxPlayers:    intOrDefault("MAX_PLAYERS", 200),
		GameTTL:       durationOrDefault("GAME_TTL", 3*time.Hour),
		SweepInterval: durationOrDefault("SWEEP_INTERVAL", 10*time.Minute),
		RateLimit:     floatOrDefault("WS_RATE_LIMIT", 5),
		RateBurst:     intOrDefault("WS_RATE_BURST", 10),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  envOrDefault("GOOGLE_REDIRECT_URL", "http://localhost:"+port+"/auth/google/callback"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func floatOrDefault(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
