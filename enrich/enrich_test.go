package enrich

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleNeighborTable = `IP address       HW type     Flags       HW address            Mask     Device
192.168.0.1      0x1         0x2         aa:bb:cc:dd:ee:ff     *        eth0
192.168.0.7      0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.0.42     0x1         0x2         12:34:56:78:9A:BC     *        wlan0
`

func TestParseNeighborTable(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"192.168.0.1", "aa:bb:cc:dd:ee:ff"},
		{"192.168.0.42", "12:34:56:78:9a:bc"}, // normalized to lower case
		{"192.168.0.7", ""},                   // incomplete entry
		{"192.168.0.99", ""},                  // no entry
	}
	for _, tc := range cases {
		t.Run(tc.addr, func(t *testing.T) {
			got := parseNeighborTable(strings.NewReader(sampleNeighborTable), tc.addr)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestWellKnownServices(t *testing.T) {
	services := wellKnownServices([]int{22, 80, 12345})
	if services[22] != "ssh" || services[80] != "http" {
		t.Fatalf("got %v", services)
	}
	if _, ok := services[12345]; ok {
		t.Fatalf("unexpected entry for unknown port: %v", services)
	}
}

func TestServiceAndOSWithoutNmapFallsBack(t *testing.T) {
	s := &System{timeout: time.Second, nmapPath: "", logger: testLogger()}

	osGuess, services := s.ServiceAndOS(context.Background(), "192.0.2.1", []int{22, 443})
	if osGuess != "" {
		t.Fatalf("expected no OS guess without nmap, got %q", osGuess)
	}
	if services[22] != "ssh" || services[443] != "https" {
		t.Fatalf("fallback services missing: %v", services)
	}
}

func TestServiceAndOSNoOpenPorts(t *testing.T) {
	s := &System{timeout: time.Second, nmapPath: "", logger: testLogger()}

	osGuess, services := s.ServiceAndOS(context.Background(), "192.0.2.1", nil)
	if osGuess != "" || len(services) != 0 {
		t.Fatalf("expected empty result, got %q %v", osGuess, services)
	}
}

func TestDisabledLeavesEverythingEmpty(t *testing.T) {
	var d Disabled
	if d.Hostname(context.Background(), "192.0.2.1") != "" {
		t.Fatal("hostname not empty")
	}
	if d.MAC("192.0.2.1") != "" {
		t.Fatal("mac not empty")
	}
	osGuess, services := d.ServiceAndOS(context.Background(), "192.0.2.1", []int{22})
	if osGuess != "" || services != nil {
		t.Fatal("service/os not empty")
	}
}
