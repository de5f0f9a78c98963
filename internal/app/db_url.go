package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL tags connections with the service name so they can be told
// apart in pg_stat_activity. Explicit values and key=value DSNs are kept.
func normalizeDBURL(raw, applicationName string) string {
	applicationName = strings.TrimSpace(applicationName)
	if applicationName == "" {
		return raw
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("application_name") != "" {
		return raw
	}
	query.Set("application_name", applicationName)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
