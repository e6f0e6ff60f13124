package auditlog

import "strings"

// maxDataLen caps stored record data; TXT payloads can run long and the
// audit trail only needs enough to identify the change.
const maxDataLen = 255

// secretPrefixes marks TXT-style payloads whose tails should not land in
// the audit database verbatim.
var secretPrefixes = []string{
	"oauth-token=",
	"api-key=",
	"secret=",
}

// SanitizeData redacts credential-looking payloads and truncates long
// values for audit storage.
func SanitizeData(data string) string {
	lower := strings.ToLower(data)
	for _, prefix := range secretPrefixes {
		if idx := strings.Index(lower, prefix); idx >= 0 {
			data = data[:idx+len(prefix)] + "<redacted>"
			break
		}
	}

	if len(data) > maxDataLen {
		data = data[:maxDataLen-3] + "..."
	}
	return data
}
