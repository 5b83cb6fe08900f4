package targets

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolvePortSpec_Range(t *testing.T) {
	ports, err := ResolvePortSpec("20-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{20, 21, 22, 23, 24, 25}
	if !reflect.DeepEqual(ports, want) {
		t.Fatalf("got %v want %v", ports, want)
	}
}

func TestResolvePortSpec_ListPreservesOrder(t *testing.T) {
	ports, err := ResolvePortSpec("443,22,80,22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Order as given, duplicates removed.
	want := []int{443, 22, 80}
	if !reflect.DeepEqual(ports, want) {
		t.Fatalf("got %v want %v", ports, want)
	}
}

func TestResolvePortSpec_Single(t *testing.T) {
	ports, err := ResolvePortSpec("8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ports, []int{8080}) {
		t.Fatalf("got %v", ports)
	}
}

func TestResolvePortSpec_Bounds(t *testing.T) {
	ports, err := ResolvePortSpec("1-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range ports {
		if p < 1 || p > 65535 {
			t.Fatalf("port %d out of bounds", p)
		}
	}
	if _, err := ResolvePortSpec("65535"); err != nil {
		t.Fatalf("65535 should be valid: %v", err)
	}
}

func TestResolvePortSpec_InvalidRange(t *testing.T) {
	for _, spec := range []string{"1024-1", "0-10", "1-65536", "a-10", "10-b"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := ResolvePortSpec(spec); !errors.Is(err, ErrInvalidPortRange) {
				t.Fatalf("expected ErrInvalidPortRange, got %v", err)
			}
		})
	}
}

func TestResolvePortSpec_InvalidListFailsWhole(t *testing.T) {
	// One bad token must fail the entire parse, never a partial result.
	for _, spec := range []string{"22,abc,80", "22,,80", "22,0", "22,70000", "", "abc"} {
		t.Run(spec, func(t *testing.T) {
			ports, err := ResolvePortSpec(spec)
			if !errors.Is(err, ErrInvalidPortList) {
				t.Fatalf("expected ErrInvalidPortList, got %v", err)
			}
			if ports != nil {
				t.Fatalf("expected no partial result, got %v", ports)
			}
		})
	}
}
