package enrich

import (
	"context"
	"strconv"
	"strings"

	"github.com/Ullaakut/nmap/v3"
)

// ServiceAndOS delegates service identification and OS guessing to the nmap
// binary discovered at construction. When nmap is absent or fails, the OS
// guess stays empty and service names come from the well-known-port table;
// the host is never failed.
func (s *System) ServiceAndOS(ctx context.Context, addr string, open []int) (string, map[int]string) {
	if len(open) == 0 {
		return "", nil
	}
	if s.nmapPath == "" {
		return "", wellKnownServices(open)
	}

	tokens := make([]string, len(open))
	for i, p := range open {
		tokens[i] = strconv.Itoa(p)
	}

	sc, err := nmap.NewScanner(ctx,
		nmap.WithBinaryPath(s.nmapPath),
		nmap.WithTargets(addr),
		nmap.WithPorts(strings.Join(tokens, ",")),
		nmap.WithServiceInfo(),
		nmap.WithOSDetection(),
	)
	if err != nil {
		s.logger.Debug("nmap setup failed", "addr", addr, "error", err)
		return "", wellKnownServices(open)
	}

	run, warnings, err := sc.Run()
	if err != nil || run == nil {
		s.logger.Debug("nmap run failed", "addr", addr, "error", err)
		return "", wellKnownServices(open)
	}
	if warnings != nil && len(*warnings) > 0 {
		s.logger.Debug("nmap warnings", "addr", addr, "count", len(*warnings))
	}

	osGuess := ""
	services := make(map[int]string, len(open))
	for _, host := range run.Hosts {
		for _, port := range host.Ports {
			if port.State.State == "open" && port.Service.Name != "" {
				services[int(port.ID)] = port.Service.Name
			}
		}
		if osGuess == "" && len(host.OS.Matches) > 0 {
			osGuess = host.OS.Matches[0].Name
		}
	}

	// Keep the fallback name for anything nmap left unidentified.
	for port, name := range wellKnownServices(open) {
		if _, ok := services[port]; !ok {
			services[port] = name
		}
	}
	return osGuess, services
}
