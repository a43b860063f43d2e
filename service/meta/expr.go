package meta

import (
	"os"
	"regexp"
)

var envExpr = regexp.MustCompile(`\$\{env\.([A-Za-z0-9_]*)\}`)

// ExpandEnv replaces all occurrences of ${env.KEY} with the value of the
// environment variable KEY, or "" if unset. Malformed expressions are kept.
func ExpandEnv(value string) string {
	return Expand(value, os.Getenv)
}

// Expand replaces ${env.KEY} expressions using lookup.
func Expand(value string, lookup func(key string) string) string {
	return envExpr.ReplaceAllStringFunc(value, func(expr string) string {
		key := envExpr.FindStringSubmatch(expr)[1]
		if key == "" {
			return ""
		}
		return lookup(key)
	})
}
