package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes to the pool DSN
// unless the operator already chose a value. The scheduler's conditional
// UPDATEs go through lib/pq prepared statements, and some poolers mangle
// binary results on those.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		// An unparseable DSN fails loudly at Open; don't mask it here.
		return raw
	}

	params := parsed.Query()
	if params.Get("disable_prepared_binary_result") == "" {
		params.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = params.Encode()
	}

	return parsed.String()
}

// dbNameFromURL extracts the database name for log fields and span
// attributes. Both URL DSNs and key=value DSNs appear in deployments.
func dbNameFromURL(raw string) string {
	dsn := strings.TrimSpace(raw)

	if parsed, err := url.Parse(dsn); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(dsn) {
		if !strings.HasPrefix(field, "dbname=") {
			continue
		}
		if name := strings.Trim(strings.TrimPrefix(field, "dbname="), ` "'`); name != "" {
			return name
		}
	}

	return ""
}
