package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// clientIP prefers proxy headers over the socket peer. The first entry of a
// forwarded chain is the original client.
func clientIP(r *http.Request) string {
	for _, candidate := range []string{
		r.Header.Get("Fly-Client-IP"),
		r.Header.Get("X-Forwarded-For"),
		r.Header.Get("X-Real-IP"),
		r.RemoteAddr,
	} {
		if ip := normalizeIP(candidate); ip != "" {
			return ip
		}
	}
	return ""
}

// clientCountry returns an ISO 3166 alpha-2 code from edge headers, or "ZZ".
func clientCountry(r *http.Request) string {
	for _, candidate := range []string{
		r.Header.Get("Fly-Client-Country"),
		r.Header.Get("CF-IPCountry"),
		r.Header.Get("CloudFront-Viewer-Country"),
	} {
		if code := normalizeCountry(candidate); code != "" {
			return code
		}
	}
	return "ZZ"
}

func normalizeIP(raw string) string {
	value, _, _ := strings.Cut(strings.TrimSpace(raw), ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}

func normalizeCountry(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}
