package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry represents one persisted zone change event.
type AuditEntry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Zone       string    `json:"zone"`
	Action     string    `json:"action"`
	RecordName string    `json:"record_name,omitempty"`
	RecordType string    `json:"record_type,omitempty"`
	RecordData string    `json:"record_data,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
