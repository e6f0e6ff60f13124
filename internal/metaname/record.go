package metaname

import "strings"

// RecordType represents a DNS record type.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeCAA   RecordType = "CAA"
)

// DefaultTTL is applied when the API omits a TTL or a caller leaves it zero.
const DefaultTTL = 3600

// ZoneRecord is a DNS record as the Metaname API represents it: one value
// per record, with an optional auxiliary priority field.
type ZoneRecord struct {
	// Reference is the opaque identifier Metaname assigns on creation.
	// It is the only handle usable for deletion, and is empty on records
	// built locally for outbound creates.
	Reference string `json:"reference,omitempty"`

	// Name is the owner name as stored by Metaname ("@" for the apex).
	Name string `json:"name"`

	// Type is the DNS record type.
	Type RecordType `json:"type"`

	// Data is the record value (IP address, hostname, text, etc.).
	Data string `json:"data"`

	// TTL is the time-to-live in seconds.
	TTL int `json:"ttl"`

	// Aux is the priority for record types that carry one (MX).
	// nil means not applicable.
	Aux *int `json:"aux,omitempty"`
}

// apiRecord is the wire shape of a record in API responses.
type apiRecord struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Data      string `json:"data"`
	TTL       int    `json:"ttl"`
	Aux       *int   `json:"aux"`
}

// recordFromAPI normalises an API record payload into a ZoneRecord.
func recordFromAPI(r apiRecord) ZoneRecord {
	name := r.Name
	if name == "" {
		name = "@"
	}
	ttl := r.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return ZoneRecord{
		Reference: r.Reference,
		Name:      name,
		Type:      RecordType(strings.ToUpper(r.Type)),
		Data:      r.Data,
		TTL:       ttl,
		Aux:       r.Aux,
	}
}

// APIPayload serialises the record into the shape create_dns_record and
// update_dns_record expect. The reference is never included; Metaname
// assigns it.
func (r ZoneRecord) APIPayload() map[string]any {
	payload := map[string]any{
		"name": r.Name,
		"type": string(r.Type),
		"data": r.Data,
		"ttl":  r.TTL,
	}
	if r.Aux != nil {
		payload["aux"] = *r.Aux
	}
	return payload
}
