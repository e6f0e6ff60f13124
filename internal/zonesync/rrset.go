package zonesync

import (
	"fmt"

	"opsnz/metasync/internal/metaname"
)

// RRSet is a grouped resource record set: one entry per owner, type, and
// TTL. Scalar-valued types (CNAME, NS) use Value; everything else carries
// a Values list. Name is relative to the zone, with "" meaning the apex.
type RRSet struct {
	Name   string
	Type   metaname.RecordType
	TTL    int
	Value  string
	Values []any
}

// MXValue is one mail exchanger entry within an MX record set.
type MXValue struct {
	Exchange   string
	Preference int
}

// CAAValue is one certification authority authorization entry.
type CAAValue struct {
	Flags string
	Tag   string
	Value string
}

// DisplayValues renders the record set's data as display strings, one per
// value.
func (rr RRSet) DisplayValues() []string {
	if rr.Value != "" {
		return []string{rr.Value}
	}
	out := make([]string, 0, len(rr.Values))
	for _, v := range rr.Values {
		switch val := v.(type) {
		case MXValue:
			out = append(out, fmt.Sprintf("%d %s", val.Preference, val.Exchange))
		case CAAValue:
			out = append(out, fmt.Sprintf("%s %s %q", val.Flags, val.Tag, val.Value))
		case string:
			out = append(out, val)
		default:
			out = append(out, fmt.Sprint(val))
		}
	}
	return out
}

// Zone receives the record sets produced by Populate.
type Zone interface {
	// Name returns the zone's domain, with or without a trailing dot.
	Name() string

	// AddRecord registers one reconciled record set with the zone.
	AddRecord(RRSet)
}

// ZoneBuffer is a Zone that collects record sets in memory. It is the
// zone implementation used by the CLI and by tests.
type ZoneBuffer struct {
	Domain  string
	Records []RRSet
}

func NewZoneBuffer(domain string) *ZoneBuffer {
	return &ZoneBuffer{Domain: domain}
}

func (z *ZoneBuffer) Name() string { return z.Domain }

func (z *ZoneBuffer) AddRecord(rr RRSet) {
	z.Records = append(z.Records, rr)
}

// ChangeKind identifies the operation a Change describes.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "create"
	ChangeDelete ChangeKind = "delete"
	ChangeUpdate ChangeKind = "update"
)

// Change is one planned zone mutation. Create carries New, Delete carries
// Existing, and Update carries both.
type Change struct {
	Kind     ChangeKind
	Existing *RRSet
	New      *RRSet
}
