// Package naming converts the capitalized class-name identifiers found in
// configuration into the normalized module-name segments used by the registry.
package naming

import (
	"fmt"
	"strings"
)

// InvalidNameError reports a class-name identifier that violates the naming
// constraints.
type InvalidNameError struct {
	Name   string
	Reason string
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid class name %q: %s", e.Name, e.Reason)
}

// ToModuleName converts a CamelCase class name into its underscore_case
// module name, e.g. "ObsCorrelationScatter" becomes
// "obs_correlation_scatter". The name must be non-empty and consist solely of
// ASCII letters; anything else fails with an InvalidNameError.
func ToModuleName(name string) (string, error) {
	if name == "" {
		return "", &InvalidNameError{Name: name, Reason: "class name must be a non-empty string"}
	}
	for _, r := range name {
		if !isLetter(r) {
			return "", &InvalidNameError{
				Name:   name,
				Reason: fmt.Sprintf("only a-z A-Z characters allowed, found %q", r),
			}
		}
	}

	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}

	// A leading uppercase letter produces a leading separator; strip exactly one.
	return strings.TrimPrefix(b.String(), "_"), nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
