package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCountriesURL = "https://restcountries.com/v3.1/all"
	DefaultSearchURL    = "https://serpapi.com/search"
)

type Config struct {
	ServerPort string

	// SearchAPIKey is read from API_KEY and used by every search route except scholarships.
	SearchAPIKey string
	// ScholarshipAPIKey is read from the lowercase api_key variable.
	ScholarshipAPIKey string

	CountriesURL      string
	SearchURL         string
	HTTPClientTimeout time.Duration

	BreakerFailureThreshold int
	BreakerOpenTimeout      time.Duration
	LogSampleInterval       int
	LogLevel                slog.Level

	OTLPEndpoint string

	KafkaBrokers     []string
	KafkaEventsTopic string
	ReadinessTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("PORT", "5000"),
		SearchAPIKey:            getEnv("API_KEY", ""),
		ScholarshipAPIKey:       getEnv("api_key", ""),
		CountriesURL:            getEnv("COUNTRIES_API_URL", DefaultCountriesURL),
		SearchURL:               getEnv("SEARCH_API_URL", DefaultSearchURL),
		HTTPClientTimeout:       getDurationEnv("HTTP_CLIENT_TIMEOUT", 0),
		BreakerFailureThreshold: getIntEnv("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerOpenTimeout:      getDurationEnv("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		LogSampleInterval:       getIntEnv("LOG_SAMPLE_INTERVAL", 10),
		LogLevel:                getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		OTLPEndpoint:            getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaEventsTopic:        getEnv("KAFKA_EVENTS_TOPIC", "search_events"),
		ReadinessTimeout:        getDurationEnv("READINESS_TIMEOUT", 30*time.Second),
	}

	// Scholarships historically read a separate lowercase key. Keep it separate,
	// but fall back to API_KEY so an unset api_key does not silently break the route.
	if cfg.ScholarshipAPIKey == "" && cfg.SearchAPIKey != "" {
		slog.Warn("api_key not set, scholarships will use API_KEY")
		cfg.ScholarshipAPIKey = cfg.SearchAPIKey
	}
	return cfg
}

// EventsEnabled reports whether search events should be published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaEventsTopic != ""
}

// Addr is the listen address; the server binds every interface.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.ServerPort
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

// getLogLevelEnv accepts slog level names such as "debug", "WARN" or "info+2".
func getLogLevelEnv(key string, fallback slog.Level) slog.Level {
	if value, ok := os.LookupEnv(key); ok {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "1m", "60s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer seconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
