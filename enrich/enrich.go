// Package enrich provides best-effort host metadata collectors: reverse DNS,
// link-layer addresses from the kernel neighbor cache, and service/OS
// detection delegated to an external nmap binary. Every lookup degrades to an
// empty value on failure; nothing here may abort a host's processing.
package enrich

import (
	"context"
	"log/slog"
	"net"
	"os/exec"
	"strings"
	"time"

	"netrecon/config"
)

// System collects metadata from the local resolver, the neighbor cache and,
// when the binary is present, nmap. Build it once per run with NewSystem:
// nmap availability is detected at construction, not retried per host.
type System struct {
	timeout  time.Duration
	nmapPath string
	logger   *slog.Logger
}

// NewSystem builds the system-backed enricher. If nmap cannot be found the
// fingerprinting step is disabled for the whole run and service names fall
// back to the well-known-port table.
func NewSystem(cfg config.Config, logger *slog.Logger) *System {
	path := cfg.NmapPath
	if path == "" {
		found, err := exec.LookPath("nmap")
		if err == nil {
			path = found
		} else {
			logger.Debug("nmap not found, fingerprinting disabled for this run")
		}
	}
	timeout := cfg.Timeout
	if timeout < time.Second {
		// Reverse lookups tolerate a little more latency than port dials.
		timeout = time.Second
	}
	return &System{timeout: timeout, nmapPath: path, logger: logger}
}

// Hostname performs a reverse DNS lookup, returning empty on any failure.
func (s *System) Hostname(ctx context.Context, addr string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, addr)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

// Disabled satisfies the enrichment contract while leaving every field
// empty. Selected when the operator opts out of enrichment entirely.
type Disabled struct{}

func (Disabled) Hostname(context.Context, string) string { return "" }

func (Disabled) MAC(string) string { return "" }

func (Disabled) ServiceAndOS(context.Context, string, []int) (string, map[int]string) {
	return "", nil
}
