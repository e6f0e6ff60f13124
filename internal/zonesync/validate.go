package zonesync

import (
	"fmt"
	"net"
	"strings"

	"opsnz/metasync/internal/metaname"
)

// supportedTypes is the set of record types the sync path handles.
var supportedTypes = map[metaname.RecordType]bool{
	metaname.RecordTypeA:     true,
	metaname.RecordTypeAAAA:  true,
	metaname.RecordTypeCNAME: true,
	metaname.RecordTypeMX:    true,
	metaname.RecordTypeNS:    true,
	metaname.RecordTypeTXT:   true,
	metaname.RecordTypeCAA:   true,
}

// ValidateType returns an error if t is not a supported record type.
func ValidateType(t metaname.RecordType) error {
	if !supportedTypes[t] {
		return fmt.Errorf("unsupported record type %q", t)
	}
	return nil
}

// ValidateContent checks that a value is plausible for the record type.
// It catches obvious mismatches (e.g. a non-IP value for an A record) to
// give the user an early error; it is not an exhaustive syntax check.
func ValidateContent(t metaname.RecordType, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("record content cannot be empty")
	}

	switch t {
	case metaname.RecordTypeA:
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("A record content must be a valid IPv4 address, got %q", content)
		}
	case metaname.RecordTypeAAAA:
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("AAAA record content must be a valid IPv6 address, got %q", content)
		}
	}

	return nil
}
