package targets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPortRange indicates a malformed or reversed port range.
	ErrInvalidPortRange = errors.New("invalid port range")
	// ErrInvalidPortList indicates a port list with at least one bad token.
	ErrInvalidPortList = errors.New("invalid port list")
)

// ResolvePortSpec turns a port spec into a deduplicated sequence of ports in
// [1,65535]. Supported forms:
//   - range "1-1024" (ascending)
//   - list "22,80,443" (order preserved as given)
//   - single "443"
//
// A single bad token fails the whole parse: a malformed spec must never
// silently scan a subset the user didn't ask for.
func ResolvePortSpec(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)

	if strings.Contains(spec, ",") {
		return resolvePortList(spec)
	}
	if strings.Contains(spec, "-") {
		return resolvePortRange(spec)
	}

	port, err := parsePort(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPortList, spec)
	}
	return []int{port}, nil
}

func resolvePortRange(spec string) ([]int, error) {
	left, right, _ := strings.Cut(spec, "-")
	start, err := parsePort(left)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: bad start port", ErrInvalidPortRange, spec)
	}
	end, err := parsePort(right)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: bad end port", ErrInvalidPortRange, spec)
	}
	if start > end {
		return nil, fmt.Errorf("%w: %q: start exceeds end", ErrInvalidPortRange, spec)
	}

	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return ports, nil
}

func resolvePortList(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	var ports []int
	for _, tok := range strings.Split(spec, ",") {
		port, err := parsePort(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad token %q", ErrInvalidPortList, spec, strings.TrimSpace(tok))
		}
		if _, dup := seen[port]; dup {
			continue
		}
		seen[port] = struct{}{}
		ports = append(ports, port)
	}
	return ports, nil
}

func parsePort(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", n)
	}
	return n, nil
}
