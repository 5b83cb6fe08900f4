package scanner

import (
	"context"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"netrecon/config"
)

// ConnectScanner performs TCP connect scans with two levels of bounding:
// a per-host inner pool and a run-global cap on concurrent connection
// attempts shared by every host the engine is scanning. Timeouts are treated
// the same as refusals — some filtered ports are indistinguishable from
// closed ones, which is an accepted limitation of connect scanning. A single
// timeout is a final answer for that port; no retry.
type ConnectScanner struct {
	timeout     time.Duration
	concurrency int
	inflight    *semaphore.Weighted
}

// NewConnectScanner builds a scanner whose global in-flight cap is sized
// from the configuration. One ConnectScanner must be shared across all hosts
// of a run for the cap to hold.
func NewConnectScanner(cfg config.Config) *ConnectScanner {
	concurrency := cfg.PortConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	maxInFlight := cfg.MaxInFlight
	if maxInFlight < 1 {
		maxInFlight = int64(concurrency)
	}
	return &ConnectScanner{
		timeout:     cfg.Timeout,
		concurrency: concurrency,
		inflight:    semaphore.NewWeighted(maxInFlight),
	}
}

// Scan attempts a connect to every candidate port on addr and returns the
// open subset sorted ascending. Cancelling ctx stops new attempts and
// unblocks in-flight dials.
func (s *ConnectScanner) Scan(ctx context.Context, addr string, ports []int) []int {
	local := semaphore.NewWeighted(int64(s.concurrency))

	var (
		mu   sync.Mutex
		open []int
		wg   sync.WaitGroup
	)

	for _, port := range ports {
		if err := local.Acquire(ctx, 1); err != nil {
			break
		}
		if err := s.inflight.Acquire(ctx, 1); err != nil {
			local.Release(1)
			break
		}

		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			defer s.inflight.Release(1)
			defer local.Release(1)

			if s.dial(ctx, addr, port) {
				mu.Lock()
				open = append(open, port)
				mu.Unlock()
			}
		}(port)
	}

	wg.Wait()
	sort.Ints(open)
	return open
}

// dial reports whether a TCP connect to addr:port succeeds within the
// timeout. Refusals, timeouts and unreachable errors all classify as closed.
func (s *ConnectScanner) dial(ctx context.Context, addr string, port int) bool {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
