package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by NARS_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("NARS_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the process environment still applies.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL enables the PostgreSQL output journal when set.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// APIKey guards the /v1 routes when set.
func APIKey() string {
	return os.Getenv("NARS_API_KEY")
}

// ParamsFile is an optional YAML file overlaying the reasoning parameters.
func ParamsFile() string {
	return os.Getenv("NARS_PARAMS_FILE")
}

// CycleDelay is the pause between cycles. Defaults to 0 (run flat out).
func CycleDelay() time.Duration {
	d, err := time.ParseDuration(os.Getenv("NARS_CYCLE_DELAY"))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// SnapshotInterval is how many cycles pass between published snapshots.
// Defaults to 100 if not set.
func SnapshotInterval() uint64 {
	n, err := strconv.ParseUint(os.Getenv("NARS_SNAPSHOT_INTERVAL"), 10, 64)
	if err != nil || n == 0 {
		return 100
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
