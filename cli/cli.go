// Package cli is the command-line surface of netrecon: flag parsing,
// target/port spec validation, and report printing.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netrecon/api"
	"netrecon/config"
	"netrecon/enrich"
	"netrecon/logging"
	"netrecon/scanner"
	"netrecon/targets"
)

// Run parses flags, executes a scan (or starts the HTTP scan service) and
// returns the process exit code: 0 for a completed run even when no hosts
// were found, 1 for a fatal configuration error that prevented scanning.
func Run() int {
	host := flag.String("host", "", "Single host IP (e.g. 192.168.0.10)")
	ipRange := flag.String("range", "", "Address range like 192.168.0.1-49")
	subnet := flag.String("subnet", "", "CIDR block like 192.168.0.0/24")
	portSpec := flag.String("ports", "1-1024", "Port range or comma-separated list, default 1-1024")
	timeout := flag.Float64("timeout", 0.5, "Socket timeout in seconds")
	workers := flag.Int("workers", 32, "Concurrent host workers")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	verbose := flag.Bool("v", false, "Enable debug logging")
	serve := flag.Bool("serve", false, "Run the HTTP scan service instead of a one-shot scan")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.Configure(level)

	cfg := config.Load()
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	cfg = applyFlagOverrides(cfg, setFlags, *timeout, *workers)

	if *serve {
		if err := api.Run(cfg); err != nil {
			logger.Error("scan service failed", "error", err)
			return 1
		}
		return 0
	}

	specCount := 0
	for _, s := range []string{*host, *ipRange, *subnet} {
		if s != "" {
			specCount++
		}
	}
	if specCount != 1 {
		printUsage()
		return 1
	}

	var (
		addrs []string
		err   error
	)
	switch {
	case *host != "":
		addrs, err = targets.ExpandHost(*host)
	case *ipRange != "":
		addrs, err = targets.ExpandRange(*ipRange)
	default:
		addrs, err = targets.ExpandCIDR(*subnet)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ports, err := targets.ResolvePortSpec(*portSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := scanner.NewEngine(cfg, ports,
		scanner.NewConnectProber(cfg),
		scanner.NewConnectScanner(cfg),
		enrich.NewSystem(cfg, logger),
		logger,
	)
	reports := engine.Run(ctx, addrs)

	if *jsonOutput {
		outputJSON(reports)
	} else {
		outputPlainText(reports)
	}
	return 0
}

// applyFlagOverrides layers explicitly-set flags over the env/.env-derived
// configuration. Flags left at their defaults must not clobber RECON_TIMEOUT
// or RECON_WORKERS.
func applyFlagOverrides(cfg config.Config, set map[string]bool, timeout float64, workers int) config.Config {
	if set["timeout"] && timeout > 0 {
		cfg.Timeout = time.Duration(timeout * float64(time.Second))
	}
	if set["workers"] && workers > 0 {
		cfg.Workers = workers
	}
	return cfg
}

// printUsage displays the help message.
func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: netrecon (--host <ip> | --range <start-end> | --subnet <cidr>) [--ports <spec>] [--timeout <seconds>] [--workers <n>] [--json]")
	fmt.Fprintln(os.Stderr, "Example: netrecon --range 192.168.0.1-49 --ports 1-1024 --timeout 0.5")
	fmt.Fprintln(os.Stderr, "Example: netrecon --subnet 10.0.0.0/24 --ports 22,80,443 --json")
	fmt.Fprintln(os.Stderr, "Example: netrecon --serve")
}

// outputJSON marshals and prints reports in JSON format.
func outputJSON(reports []scanner.HostReport) {
	jsonData, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding to JSON: %v\n", err)
		return
	}
	fmt.Println(string(jsonData))
}

// outputPlainText prints one readable block per live host. The format is
// plain text only, so redirecting stdout to a file changes nothing.
func outputPlainText(reports []scanner.HostReport) {
	divider := "============================================================"
	for _, r := range reports {
		fmt.Println(divider)
		fmt.Printf("IP: %s\n", r.Addr)
		fmt.Printf("MAC: %s\n", orDash(r.MAC))
		fmt.Printf("Hostname: %s\n", orDash(r.Hostname))
		fmt.Printf("OS: %s\n", orDash(r.OS))
		if len(r.Ports) == 0 {
			fmt.Println("Open ports: -")
			continue
		}
		fmt.Println("Open ports:")
		for _, p := range r.Ports {
			fmt.Printf("  - tcp/%d  %s\n", p.Port, orDash(p.Service))
		}
	}
	fmt.Println(divider)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
