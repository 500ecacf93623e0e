package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public restful-booker deployment.
const DefaultBaseURL = "https://restful-booker.herokuapp.com"

type Config struct {
	Env      string
	LogLevel string
	LogFile  string

	// Booking API under test
	BaseURL     string
	Username    string
	Password    string
	HTTPTimeout time.Duration
	Live        bool

	// Expectations that depend on the remote service, not on this code
	AuthFailureMessage string
	MaxResponseTime    time.Duration

	// Reference server
	StubPort           string
	StubDatabaseURL    string
	StubRedisURL       string
	StubTokenTTL       time.Duration
	StubAllowedOrigins []string
	StubSeedBookings   int
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		BaseURL:     strings.TrimRight(getEnv("BOOKER_BASE_URL", DefaultBaseURL), "/"),
		Username:    getEnv("BOOKER_USERNAME", "admin"),
		Password:    getEnv("BOOKER_PASSWORD", "password123"),
		HTTPTimeout: parseDuration(getEnv("BOOKER_HTTP_TIMEOUT", "10s"), 10*time.Second),
		Live:        parseBool(getEnv("BOOKER_LIVE", "false"), false),

		AuthFailureMessage: getEnv("BOOKER_AUTH_FAILURE_MESSAGE", "Bad credentials"),
		MaxResponseTime:    parseDuration(getEnv("BOOKER_MAX_RESPONSE_TIME", "2s"), 2*time.Second),

		StubPort:           getEnv("STUB_PORT", "3001"),
		StubDatabaseURL:    getEnv("STUB_DATABASE_URL", ""),
		StubRedisURL:       getEnv("STUB_REDIS_URL", ""),
		StubTokenTTL:       parseDuration(getEnv("STUB_TOKEN_TTL", "24h"), 24*time.Hour),
		StubAllowedOrigins: parseStringSlice(getEnv("STUB_ALLOWED_ORIGINS", "*")),
		StubSeedBookings:   parseInt(getEnv("STUB_SEED_BOOKINGS", "10"), 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseBool(s string, defaultValue bool) bool {
	value, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
