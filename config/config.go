// Package config builds the immutable process-wide scan configuration.
// A Config is assembled once at startup from .env/environment defaults plus
// command-line overrides, and then passed by value into every component.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the engine and the API service need.
// It is never mutated after Load returns.
type Config struct {
	// Timeout bounds every single socket operation (dial, probe).
	Timeout time.Duration
	// Workers bounds concurrency across hosts (outer pool).
	Workers int
	// PortConcurrency bounds concurrency across ports within one host (inner pool).
	PortConcurrency int
	// MaxInFlight caps the total number of concurrent connection attempts
	// across all hosts, keeping file-descriptor usage predictable.
	MaxInFlight int64
	// ProbePorts are the common ports tried by the liveness pre-filter.
	ProbePorts []int
	// NmapPath overrides nmap binary discovery; empty means look it up in PATH.
	NmapPath string

	// Service settings, used only by the HTTP scan service.
	ListenAddr string
	RedisAddr  string
	APIKey     string
	RateLimit  int64
}

var defaultProbePorts = []int{80, 443, 22, 445, 139}

// Load reads .env (if present) and the environment and returns a Config
// populated with defaults for anything unset.
func Load() Config {
	// Missing .env is not an error; the environment still applies.
	_ = godotenv.Load()

	return Config{
		Timeout:         getenvDuration("RECON_TIMEOUT", 500*time.Millisecond),
		Workers:         getenvInt("RECON_WORKERS", 32),
		PortConcurrency: getenvInt("RECON_PORT_CONCURRENCY", 100),
		MaxInFlight:     int64(getenvInt("RECON_MAX_INFLIGHT", 512)),
		ProbePorts:      getenvPorts("RECON_PROBE_PORTS", defaultProbePorts),
		NmapPath:        os.Getenv("RECON_NMAP"),
		ListenAddr:      getenv("RECON_LISTEN_ADDR", ":8080"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		APIKey:          os.Getenv("RECON_API_KEY"),
		RateLimit:       int64(getenvInt("RECON_RATE_LIMIT", 60)),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// getenvDuration accepts either a float number of seconds ("0.5") or a
// Go duration string ("500ms").
func getenvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getenvPorts(key string, fallback []int) []int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var ports []int
	for _, tok := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 || n > 65535 {
			return fallback
		}
		ports = append(ports, n)
	}
	if len(ports) == 0 {
		return fallback
	}
	return ports
}
