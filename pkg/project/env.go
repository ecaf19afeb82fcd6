package project

import (
	"os"
	"strings"
)

// ReplaceDefault is the substitution token an override value may embed to
// mean "the fallback the caller would otherwise have used".
const ReplaceDefault = "%default"

// EnvOverride checks, in order, each candidate environment variable name
// built from varsInParts (each inner slice's parts are upper-cased, every
// character outside A-Z and 0-9 is replaced by '_', and the parts are
// joined with '_') and returns
// the first one that is set. A value containing ReplaceDefault has that
// token substituted with fallback before being returned. If none are
// set, fallback is returned unchanged.
func EnvOverride(varsInParts [][]string, fallback string) string {
	for _, parts := range varsInParts {
		name := envVarName(parts)
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if strings.Contains(value, ReplaceDefault) {
			return strings.ReplaceAll(value, ReplaceDefault, fallback)
		}
		return value
	}
	return fallback
}

func envVarName(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteRune('_')
		}
		for _, r := range strings.ToUpper(part) {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			} else {
				b.WriteRune('_')
			}
		}
	}
	return b.String()
}
