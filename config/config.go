package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	CoordinatorURL string
	AuthURL        string

	AnalyzeTimeout time.Duration

	DemoUserID    string
	DemoAccountID string
	DemoUsername  string
	DemoPassword  string

	LogLevel  string
	LogPretty bool
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	timeoutSeconds, err := strconv.Atoi(getEnv("ANALYZE_TIMEOUT_SECONDS", "60"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		CoordinatorURL: getEnv("COORDINATOR_URL", "http://localhost:8000"),
		AuthURL:        getEnv("AUTH_URL", ""),
		AnalyzeTimeout: time.Duration(timeoutSeconds) * time.Second,
		DemoUserID:     getEnv("DEMO_USER_ID", "testuser"),
		DemoAccountID:  getEnv("DEMO_ACCOUNT_ID", "1011226111"),
		DemoUsername:   getEnv("DEMO_USERNAME", "testuser"),
		DemoPassword:   getEnv("DEMO_PASSWORD", "bankofanthos"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnv("LOG_PRETTY", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
