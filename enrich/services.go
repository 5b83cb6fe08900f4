package enrich

// wellKnownNames maps frequently scanned ports to their conventional service
// names, used when nmap is unavailable or leaves a port unidentified.
var wellKnownNames = map[int]string{
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	80:    "http",
	110:   "pop3",
	135:   "msrpc",
	139:   "netbios-ssn",
	143:   "imap",
	443:   "https",
	445:   "microsoft-ds",
	993:   "imaps",
	995:   "pop3s",
	1883:  "mqtt",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5432:  "postgresql",
	5900:  "vnc",
	6379:  "redis",
	8080:  "http-proxy",
	8443:  "https-alt",
	9100:  "jetdirect",
	27017: "mongod",
}

// wellKnownServices returns the subset of the table covering the given ports.
func wellKnownServices(open []int) map[int]string {
	services := make(map[int]string)
	for _, port := range open {
		if name, ok := wellKnownNames[port]; ok {
			services[port] = name
		}
	}
	return services
}
