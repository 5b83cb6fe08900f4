// Package targets expands address and port specifications into the concrete
// sequences the scan engine consumes. It performs no network I/O.
package targets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAddress indicates a host spec that does not parse as IPv4.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidRange indicates a malformed or reversed address range.
	ErrInvalidRange = errors.New("invalid address range")
	// ErrInvalidCIDR indicates a malformed CIDR block.
	ErrInvalidCIDR = errors.New("invalid CIDR block")
)

// ExpandHost validates a single IPv4 host spec and returns it as a
// one-element sequence.
func ExpandHost(spec string) ([]string, error) {
	ip := parseIPv4(spec)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, spec)
	}
	return []string{ip.String()}, nil
}

// ExpandRange expands an inclusive range spec. Two forms are accepted:
// the short form "192.168.0.1-49" and the full form
// "192.168.0.1-192.168.0.49". Both endpoints must share everything but the
// last octet and the end must not precede the start.
func ExpandRange(spec string) ([]string, error) {
	left, right, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected start-end)", ErrInvalidRange, spec)
	}

	start := parseIPv4(strings.TrimSpace(left))
	if start == nil {
		return nil, fmt.Errorf("%w: %q: bad start address", ErrInvalidRange, spec)
	}

	right = strings.TrimSpace(right)
	var end net.IP
	if strings.Contains(right, ".") {
		end = parseIPv4(right)
		if end == nil {
			return nil, fmt.Errorf("%w: %q: bad end address", ErrInvalidRange, spec)
		}
		if !bytes.Equal(start[:3], end[:3]) {
			return nil, fmt.Errorf("%w: %q: endpoints must share all but the last octet", ErrInvalidRange, spec)
		}
	} else {
		// Short form: the right side is just the final octet.
		octet, err := strconv.Atoi(right)
		if err != nil || octet < 0 || octet > 255 {
			return nil, fmt.Errorf("%w: %q: bad end octet", ErrInvalidRange, spec)
		}
		end = net.IPv4(start[0], start[1], start[2], byte(octet)).To4()
	}

	lo := ipToUint32(start)
	hi := ipToUint32(end)
	if hi < lo {
		return nil, fmt.Errorf("%w: %q: end precedes start", ErrInvalidRange, spec)
	}

	addrs := make([]string, 0, hi-lo+1)
	for v := lo; ; v++ {
		addrs = append(addrs, uint32ToIP(v).String())
		if v == hi {
			break
		}
	}
	return addrs, nil
}

// ExpandCIDR expands a CIDR block into its usable host addresses. For prefix
// lengths below 31 the network and broadcast addresses are excluded; /31 and
// /32 yield the literal addresses of the block.
func ExpandCIDR(spec string) ([]string, error) {
	_, ipNet, err := net.ParseCIDR(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCIDR, spec)
	}
	if ipNet.IP.To4() == nil {
		return nil, fmt.Errorf("%w: %q: only IPv4 blocks are supported", ErrInvalidCIDR, spec)
	}

	prefix, _ := ipNet.Mask.Size()
	network := ipToUint32(ipNet.IP.To4())
	broadcast := network | ^ipToUint32(net.IP(ipNet.Mask).To4())

	lo, hi := network, broadcast
	if prefix < 31 {
		lo, hi = network+1, broadcast-1
	}

	addrs := make([]string, 0, hi-lo+1)
	for v := lo; ; v++ {
		addrs = append(addrs, uint32ToIP(v).String())
		if v == hi {
			break
		}
	}
	return addrs, nil
}

// parseIPv4 returns the 4-byte form of an IPv4 literal, or nil.
func parseIPv4(s string) net.IP {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	return ip.To4()
}

func ipToUint32(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip.To4())
}

func uint32ToIP(v uint32) net.IP {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, v)
	return ip
}
