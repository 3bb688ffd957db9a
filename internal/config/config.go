package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Sports  SportsConfig
	Session SessionConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	sports, err := loadSportsConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Sports: sports, Session: session}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
	// ChatRateLimit is the per-IP request budget per minute on /chat.
	ChatRateLimit int
	StaticDir     string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	rateLimit := 60
	if override, err := parseOptionalIntEnv("CHAT_RATE_LIMIT"); err != nil {
		return ServerConfig{}, err
	} else if override != nil && *override > 0 {
		rateLimit = *override
	}

	return ServerConfig{
		Addr:          addr,
		ChatRateLimit: rateLimit,
		StaticDir:     getEnvOrDefault("STATIC_DIR", "web/static"),
	}, nil
}

// AIConfig describes the Gemini generative endpoint.
type AIConfig struct {
	APIKey      string
	Model       string
	Temperature *float64
}

// Enabled reports whether a Gemini key was supplied. Without one the
// assistant still answers, using keyword extraction and canned replies only.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("GEMINI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:       getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		Temperature: temperature,
	}, nil
}

// SportsConfig describes the external sports/odds API.
type SportsConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// ProbeTimeout bounds the /health connectivity check.
	ProbeTimeout time.Duration
}

func loadSportsConfig() (SportsConfig, error) {
	timeout := 30
	if override, err := parseOptionalIntEnv("SPORTS_API_TIMEOUT"); err != nil {
		return SportsConfig{}, err
	} else if override != nil && *override > 0 {
		timeout = *override
	}

	return SportsConfig{
		BaseURL:      strings.TrimRight(getEnvOrDefault("SPORTS_API_BASE_URL", "http://localhost:8001"), "/"),
		APIKey:       strings.TrimSpace(os.Getenv("SPORTS_API_KEY")),
		Timeout:      time.Duration(timeout) * time.Second,
		ProbeTimeout: 10 * time.Second,
	}, nil
}

// SessionConfig bounds the in-memory conversation store.
type SessionConfig struct {
	// HistoryLimit caps stored turns per session; oldest turns drop first.
	HistoryLimit int
	// TTL is how long an idle session survives before the sweeper drops it.
	TTL time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	limit := 8
	if override, err := parseOptionalIntEnv("SESSION_HISTORY_LIMIT"); err != nil {
		return SessionConfig{}, err
	} else if override != nil && *override > 0 {
		limit = *override
	}

	ttlMinutes := 30
	if override, err := parseOptionalIntEnv("SESSION_TTL_MINUTES"); err != nil {
		return SessionConfig{}, err
	} else if override != nil && *override > 0 {
		ttlMinutes = *override
	}

	return SessionConfig{
		HistoryLimit: limit,
		TTL:          time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
