package endpoint

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPort is the port the HYCU controller serves its REST API on.
const DefaultPort = 8443

// APIPath is the versioned REST root on the controller.
const APIPath = "/rest/v1.0"

// Endpoint represents a parsed appliance address.
// Example: hycu.example.com, hycu.example.com:9443, https://10.0.0.5
type Endpoint struct {
	// Raw is the original input string.
	Raw string
	// Host is the hostname or IP without port.
	Host string
	// Port is the TCP port, DefaultPort unless given.
	Port int
}

// Parse parses an appliance address into an Endpoint. port is used when the
// address does not carry one; zero means DefaultPort.
func Parse(raw string, port int) (Endpoint, error) {
	e := Endpoint{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		return e, fmt.Errorf("host must not be empty; expected 'hostname' or 'hostname:port'")
	}
	if i := strings.Index(s, "://"); i >= 0 {
		scheme := strings.ToLower(s[:i])
		if scheme != "https" {
			return e, fmt.Errorf("unsupported scheme %q; the HYCU API is served over https", scheme)
		}
		s = s[i+3:]
	}
	s = strings.TrimSuffix(s, "/")
	if strings.ContainsAny(s, "/?#") {
		return e, fmt.Errorf("invalid host %q; must not contain a path", raw)
	}

	if port <= 0 {
		port = DefaultPort
	}
	host := s
	if h, p, err := net.SplitHostPort(s); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return e, fmt.Errorf("invalid port %q in host %q", p, raw)
		}
		host, port = h, n
	}
	host = strings.Trim(host, "[]")
	if host == "" {
		return e, fmt.Errorf("invalid host %q", raw)
	}
	if port > 65535 {
		return e, fmt.Errorf("invalid port %d", port)
	}
	e.Host = host
	e.Port = port
	return e, nil
}

// BaseURL returns the REST root, e.g. https://hycu.example.com:8443/rest/v1.0.
func (e Endpoint) BaseURL() *url.URL {
	return &url.URL{
		Scheme: "https",
		Host:   net.JoinHostPort(e.Host, strconv.Itoa(e.Port)),
		Path:   APIPath,
	}
}

// String returns a canonical string form of the endpoint.
func (e Endpoint) String() string {
	if e.Host != "" {
		return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	}
	return e.Raw
}
