package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	ServiceName string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string   // API key for authentication
	TrustedProxies []string // proxies whose X-Forwarded-For is honored

	// Event system
	EventDeadLetterPath string

	// Text-generation collaborator
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Adjudication
	JudgePersonality string // persona key used by the verdict engine
	RoundDuration    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		Version:          getEnv("VERSION", "dev"),
		ServiceName:      getEnv("SERVICE_NAME", DefaultServiceName),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "argufight"),
		APIKey:           getEnv("API_KEY", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", DefaultLLMModel),
		JudgePersonality: getEnv("JUDGE_PERSONALITY", DefaultJudgePersonality),

		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	llmTimeoutStr := getEnv("LLM_TIMEOUT_SECONDS", strconv.Itoa(DefaultLLMTimeoutSeconds))
	llmTimeout, err := strconv.Atoi(llmTimeoutStr)
	if err != nil || llmTimeout <= 0 {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT_SECONDS value: %q", llmTimeoutStr)
	}
	cfg.LLMTimeout = time.Duration(llmTimeout) * time.Second

	roundMinutesStr := getEnv("ROUND_DURATION_MINUTES", strconv.Itoa(DefaultRoundDurationMinutes))
	roundMinutes, err := strconv.Atoi(roundMinutesStr)
	if err != nil || roundMinutes <= 0 {
		return nil, fmt.Errorf("invalid ROUND_DURATION_MINUTES value: %q", roundMinutesStr)
	}
	cfg.RoundDuration = time.Duration(roundMinutes) * time.Minute

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
