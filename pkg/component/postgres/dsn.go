package postgres

import (
	"fmt"
	"strings"

	options "github.com/kart-io/haven/pkg/options/postgres"
)

// BuildDSN creates a PostgreSQL DSN from the provided options.
//
// The password is escaped so values containing spaces, quotes, or
// backslashes cannot break out of the key=value pair.
func BuildDSN(opts *options.Options) string {
	if opts == nil {
		return ""
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		opts.Host,
		opts.Port,
		opts.Username,
		escapeValue(opts.Password),
		opts.Database,
		opts.SSLMode,
	)
}

// escapeValue escapes a value for the space-separated PostgreSQL DSN format.
func escapeValue(value string) string {
	if value == "" {
		return "''"
	}

	if strings.ContainsAny(value, " '\\") {
		escaped := strings.ReplaceAll(value, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "'", "\\'")
		return "'" + escaped + "'"
	}

	return value
}
