package errors

import (
	"strings"
	"unicode"
)

// ValidateNamespace validates a namespace IRI taken from configuration.
//
// The rules are intentionally conservative:
//   - No empty namespaces
//   - No whitespace or control characters
//   - Must contain a scheme separator (':')
//   - Maximum length of 2048 characters
func ValidateNamespace(ns string) error {
	if ns == "" {
		return New(ErrCodeInvalidConfig, "namespace cannot be empty")
	}
	if len(ns) > 2048 {
		return New(ErrCodeInvalidConfig, "namespace too long (max 2048 characters)")
	}
	for _, r := range ns {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "namespace %q contains whitespace or control characters", ns)
		}
	}
	if !strings.Contains(ns, ":") {
		return New(ErrCodeInvalidConfig, "namespace %q is not an absolute IRI", ns)
	}
	return nil
}

// ValidatePrefix validates a namespace prefix. Prefixes follow the XML name
// rules without the colon.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidConfig, "prefix cannot be empty")
	}
	for i, r := range prefix {
		ok := r == '_' || unicode.IsLetter(r)
		if i > 0 {
			ok = ok || unicode.IsDigit(r) || r == '-' || r == '.'
		}
		if !ok {
			return New(ErrCodeInvalidConfig, "invalid prefix %q", prefix)
		}
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// configuration file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
