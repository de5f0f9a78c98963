package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	queryLiteralRegex    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace collapses whitespace and masks string literals so
// span attributes never carry profile data.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = queryLiteralRegex.ReplaceAllString(normalized, "'?'")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
