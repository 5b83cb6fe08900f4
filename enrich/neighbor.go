package enrich

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var macPattern = regexp.MustCompile(`(?i)\b([0-9a-f]{1,2}(?::[0-9a-f]{1,2}){5})\b`)

// MAC returns the link-layer address recorded for addr in the local neighbor
// cache, or empty. The cache is consulted, never populated: addresses outside
// the local subnet, or hosts we have not yet exchanged packets with,
// typically have no entry.
func (s *System) MAC(addr string) string {
	if mac := procNeighborMAC(addr); mac != "" {
		return mac
	}
	return arpCommandMAC(addr)
}

// procNeighborMAC reads /proc/net/arp (Linux only; the file is simply absent
// elsewhere and the arp command fallback applies).
func procNeighborMAC(addr string) string {
	f, err := os.Open("/proc/net/arp")
	if err != nil {
		return ""
	}
	defer f.Close()
	return parseNeighborTable(f, addr)
}

// parseNeighborTable scans /proc/net/arp formatted output for addr.
// Columns: IP address, HW type, Flags, HW address, Mask, Device.
func parseNeighborTable(r io.Reader, addr string) string {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != addr {
			continue
		}
		mac := strings.ToLower(fields[3])
		if mac == "00:00:00:00:00:00" {
			// Incomplete entry.
			return ""
		}
		if macPattern.MatchString(mac) {
			return mac
		}
	}
	return ""
}

// arpCommandMAC shells out to arp(8), which works on the BSDs and macOS too.
func arpCommandMAC(addr string) string {
	arpPath, err := exec.LookPath("arp")
	if err != nil {
		return ""
	}
	out, err := exec.Command(arpPath, "-n", addr).Output()
	if err != nil {
		return ""
	}
	line := string(out)
	if strings.Contains(line, "no entry") || strings.Contains(line, "incomplete") {
		return ""
	}
	if m := macPattern.FindString(line); m != "" {
		return strings.ToLower(m)
	}
	return ""
}
