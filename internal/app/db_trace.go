package app

import (
	"regexp"
	"strings"
)

// Span attributes are size-limited by the collector; the transition UPDATEs
// are short but ListUnreconciled selects every column, so cap what we attach.
const tracedQueryLimit = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a query to one line for the db.statement
// span attribute and truncates it at tracedQueryLimit.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := collapseWhitespace.ReplaceAllString(query, " ")
	if len(flat) <= tracedQueryLimit {
		return flat
	}

	return flat[:tracedQueryLimit] + "..."
}
