// Package scanner implements the scan orchestration engine: concurrent
// liveness probing, bounded-parallelism port scanning and aggregation of
// per-host reports in input order.
package scanner

import (
	"context"
	"log/slog"
	"sync"

	"netrecon/config"
)

// PortService pairs an open port with its best-effort service name.
type PortService struct {
	Port    int    `json:"port"`
	Service string `json:"service,omitempty"`
}

// HostReport is the unit of output: one entry per host that passed the
// liveness check. Every field except Addr is best-effort and may be empty.
// A report is immutable once the engine finalizes it.
type HostReport struct {
	Addr     string        `json:"addr"`
	Hostname string        `json:"hostname,omitempty"`
	MAC      string        `json:"mac,omitempty"`
	OS       string        `json:"os,omitempty"`
	Ports    []PortService `json:"ports"`
}

// Prober decides whether a host is worth a full port sweep.
type Prober interface {
	Probe(ctx context.Context, addr string) bool
}

// PortScanner enumerates open TCP ports on a single host. Implementations
// return the open subset sorted ascending regardless of completion order.
type PortScanner interface {
	Scan(ctx context.Context, addr string, ports []int) []int
}

// Enricher supplies best-effort host metadata. Implementations must degrade
// to empty values on failure and never block past their own timeouts.
type Enricher interface {
	Hostname(ctx context.Context, addr string) string
	MAC(addr string) string
	ServiceAndOS(ctx context.Context, addr string, open []int) (osGuess string, services map[int]string)
}

// Engine drives the full pipeline over a set of targets with bounded
// concurrency across hosts.
type Engine struct {
	cfg    config.Config
	ports  []int
	prober Prober
	scan   PortScanner
	enrich Enricher
	logger *slog.Logger
}

// NewEngine assembles an engine from its collaborators. The port set is the
// already-resolved sequence to sweep on each live host.
func NewEngine(cfg config.Config, ports []int, prober Prober, scan PortScanner, enrich Enricher, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		ports:  ports,
		prober: prober,
		scan:   scan,
		enrich: enrich,
		logger: logger,
	}
}

// Run scans every address and returns the reports of live hosts, ordered to
// match the input regardless of completion order. Hosts that fail the
// liveness check produce no entry. Cancelling ctx stops new connection
// attempts promptly; hosts already finalized are still returned, hosts in
// flight are omitted rather than reported half-filled.
func (e *Engine) Run(ctx context.Context, addrs []string) []HostReport {
	// One slot per input address keeps output order deterministic without
	// shared appends: each worker writes only its own indices.
	slots := make([]*HostReport, len(addrs))

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(addrs) {
		workers = len(addrs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				slots[i] = e.scanHost(ctx, addrs[i])
			}
		}()
	}

feed:
	for i := range addrs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	reports := make([]HostReport, 0, len(addrs))
	for _, r := range slots {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports
}

// scanHost runs one target through liveness, port scan and enrichment.
// Returns nil for hosts that are down or whose scan was cancelled mid-way.
func (e *Engine) scanHost(ctx context.Context, addr string) *HostReport {
	if !e.prober.Probe(ctx, addr) {
		return nil
	}

	open := e.scan.Scan(ctx, addr, e.ports)
	if ctx.Err() != nil {
		// Cancelled mid-sweep: the open set may be partial, drop the host
		// instead of reporting inconsistent state.
		return nil
	}

	report := &HostReport{Addr: addr}
	report.Hostname = e.enrich.Hostname(ctx, addr)
	report.MAC = e.enrich.MAC(addr)

	osGuess, services := e.enrich.ServiceAndOS(ctx, addr, open)
	report.OS = osGuess
	for _, port := range open {
		report.Ports = append(report.Ports, PortService{Port: port, Service: services[port]})
	}

	e.logger.Debug("host scanned", "addr", addr, "open_ports", len(open))
	return report
}
