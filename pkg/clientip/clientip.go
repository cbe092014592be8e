// Package clientip resolves the network origin of a request for rate limiting.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no address can be determined.
const Unknown = "0.0.0.0"

const (
	headerForwardedFor   = "X-Forwarded-For"
	headerCFConnectingIP = "CF-Connecting-IP"
)

// Resolve picks the client address in order: first X-Forwarded-For entry,
// CF-Connecting-IP, the peer address of the connection, then Unknown. A source whose
// value is not an IP address is skipped.
func Resolve(r *http.Request) string {
	if r == nil {
		return Unknown
	}
	first := strings.SplitN(r.Header.Get(headerForwardedFor), ",", 2)[0]
	for _, candidate := range []string{first, r.Header.Get(headerCFConnectingIP), peerHost(r.RemoteAddr)} {
		if ip := Normalize(candidate); ip != "" {
			return ip
		}
	}
	return Unknown
}

// Normalize returns the canonical text form of raw, or "" when raw is not an IP address.
func Normalize(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}

func peerHost(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
