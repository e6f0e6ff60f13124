package auditlog

import (
	"time"

	"opsnz/metasync/internal/zonesync"
)

// Recorder writes applied zone changes to a Repository. A nil Recorder
// is a no-op, so commands can audit opportunistically.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// RecordChange persists one change outcome. Failures to write the audit
// trail are returned so callers can warn, but callers should not abort
// on them; the zone change already happened.
func (r *Recorder) RecordChange(zone string, change zonesync.Change, outcome, detail string, took time.Duration) error {
	if r == nil || r.repo == nil {
		return nil
	}

	entry := &AuditEntry{
		Zone:       zone,
		Action:     string(change.Kind),
		Outcome:    outcome,
		Detail:     detail,
		DurationMs: took.Milliseconds(),
	}

	rr := change.New
	if rr == nil {
		rr = change.Existing
	}
	if rr != nil {
		entry.RecordName = rr.Name
		if entry.RecordName == "" {
			entry.RecordName = "@"
		}
		entry.RecordType = string(rr.Type)
		entry.RecordData = summarizeValues(rr)
	}

	return r.repo.Save(entry)
}

func summarizeValues(rr *zonesync.RRSet) string {
	if rr.Value != "" {
		return rr.Value
	}
	out := ""
	for i, value := range rr.Values {
		if i > 0 {
			out += ", "
		}
		switch v := value.(type) {
		case string:
			out += v
		case zonesync.MXValue:
			out += v.Exchange
		default:
			out += "?"
		}
	}
	return out
}
