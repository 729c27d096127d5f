package http

import (
	"fmt"
	"net/http"
	"strings"
)

// GetFrontendURL returns the dashboard base URL linked from reports.
// configuredURL wins when set; otherwise the URL is rebuilt from the request,
// honoring the headers set by a TLS-terminating proxy.
func GetFrontendURL(r *http.Request, configuredURL string) string {
	if configuredURL != "" {
		return strings.TrimRight(configuredURL, "/")
	}

	scheme := "https"
	if proto := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); proto == "http" || proto == "https" {
		scheme = proto
	} else if r.TLS == nil && isLoopback(r.Host) {
		scheme = "http"
	}

	// Priority: Alt-Used (Cloud Run) > X-Forwarded-Host > Host
	host := r.Host
	if altUsed := r.Header.Get("Alt-Used"); altUsed != "" {
		host = altUsed
	} else if forwarded := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); forwarded != "" {
		host = forwarded
	}

	if host == "" {
		host = "localhost"
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

// firstHeaderValue returns the original client value of a proxy header list
func firstHeaderValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

func isLoopback(host string) bool {
	name := host
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.HasSuffix(host, "]") {
		name = host[:i]
	}
	return name == "localhost" || name == "127.0.0.1" || name == "[::1]"
}
