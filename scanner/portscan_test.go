package scanner

import (
	"context"
	"net"
	"sort"
	"testing"
	"time"
)

// listenTCP opens a listener on an ephemeral loopback port and returns it
// with its port number.
func listenTCP(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	return ln, port
}

// freePort returns a loopback port that nothing is listening on.
func freePort(t *testing.T) int {
	t.Helper()
	ln, port := listenTCP(t)
	_ = ln.Close()
	return port
}

func TestScanFindsOpenPorts(t *testing.T) {
	ln1, open1 := listenTCP(t)
	defer ln1.Close()
	ln2, open2 := listenTCP(t)
	defer ln2.Close()
	closed := freePort(t)

	s := NewConnectScanner(testConfig(1))
	// Candidate order deliberately unsorted; output must be ascending anyway.
	got := s.Scan(context.Background(), "127.0.0.1", []int{open2, closed, open1})

	want := []int{open1, open2}
	sort.Ints(want)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestScanNoListenersReturnsEmpty(t *testing.T) {
	ports := []int{freePort(t), freePort(t), freePort(t)}

	s := NewConnectScanner(testConfig(1))
	start := time.Now()
	got := s.Scan(context.Background(), "127.0.0.1", ports)
	elapsed := time.Since(start)

	if len(got) != 0 {
		t.Fatalf("expected no open ports, got %v", got)
	}
	// Refusals on loopback are immediate; this should never approach the
	// timeout budget of a filtered sweep.
	if elapsed > 2*time.Second {
		t.Fatalf("closed-port sweep took %v", elapsed)
	}
}

func TestScanCancellationStopsNewAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewConnectScanner(testConfig(1))
	got := s.Scan(ctx, "127.0.0.1", []int{freePort(t)})
	if len(got) != 0 {
		t.Fatalf("expected no results after cancellation, got %v", got)
	}
}

func TestScanResultsSortedAscending(t *testing.T) {
	var listeners []net.Listener
	var ports []int
	for i := 0; i < 5; i++ {
		ln, port := listenTCP(t)
		listeners = append(listeners, ln)
		ports = append(ports, port)
	}
	defer func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}()

	// Feed ports in descending order.
	sort.Sort(sort.Reverse(sort.IntSlice(ports)))

	s := NewConnectScanner(testConfig(1))
	got := s.Scan(context.Background(), "127.0.0.1", ports)

	if !sort.IntsAreSorted(got) {
		t.Fatalf("results not sorted: %v", got)
	}
	if len(got) != len(ports) {
		t.Fatalf("expected %d open ports, got %v", len(ports), got)
	}
}
