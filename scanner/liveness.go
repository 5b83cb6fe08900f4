package scanner

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"netrecon/config"
)

// ConnectProber is the cheap liveness pre-filter: it tries a TCP connect to a
// small set of frequently-open ports and reports up on the first answer.
// A refused connection (RST) still proves the host is present; only timeouts
// and unreachable errors count as down. Hosts that filter every probe port
// but listen elsewhere are misclassified as down; that trade-off buys a scan
// that never needs raw sockets or elevated privileges.
type ConnectProber struct {
	ports   []int
	timeout time.Duration
}

// NewConnectProber builds a prober over the configured probe ports.
func NewConnectProber(cfg config.Config) *ConnectProber {
	return &ConnectProber{ports: cfg.ProbePorts, timeout: cfg.Timeout}
}

// Probe reports whether addr answered on any of the probe ports within the
// configured timeout. Each attempt observes ctx so cancellation unblocks an
// in-flight dial promptly.
func (p *ConnectProber) Probe(ctx context.Context, addr string) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	for _, port := range p.ports {
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
		if err == nil {
			_ = conn.Close()
			return true
		}
		if isConnectionRefused(err) {
			// RST means a host answered, just not on this port.
			return true
		}
		if ctx.Err() != nil {
			return false
		}
	}
	return false
}

// isConnectionRefused checks if the error is a connection refused error.
// Connection refused (RST packet) indicates a live host with a closed port.
func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	// Windows surfaces refusal with different error text.
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "actively refused")
}
