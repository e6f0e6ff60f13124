package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validNameChars matches only alphanumeric characters, hyphens, and periods.
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9.\-]+$`)

// ValidateDomainName checks that a domain name conforms to RFC 1123
// hostname rules:
//   - At least 2 characters
//   - Only alphanumeric characters (a-z, A-Z, 0-9), hyphens (-), and periods (.)
//   - First character must be alphanumeric
//   - Must contain at least one period (a registrable name, not a bare label)
//   - Labels must not start or end with a hyphen
//
// A single trailing dot (fully-qualified form) is accepted.
func ValidateDomainName(name string) error {
	name = strings.TrimSuffix(name, ".")

	if len(name) < 2 {
		return fmt.Errorf("domain name must be at least 2 characters, got %d", len(name))
	}

	if !validNameChars.MatchString(name) {
		return fmt.Errorf("domain name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and periods are allowed)", name)
	}

	if !isAlphanumeric(name[0]) {
		return fmt.Errorf("domain name must start with an alphanumeric character, got %q", string(name[0]))
	}

	if !strings.Contains(name, ".") {
		return fmt.Errorf("domain name %q must contain at least one period", name)
	}

	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return fmt.Errorf("domain name %q contains an empty label", name)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("domain name label %q must not start or end with a hyphen", label)
		}
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
