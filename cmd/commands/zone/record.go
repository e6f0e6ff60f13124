package zone

import (
	"strings"

	"opsnz/metasync/internal/metaname"
	"opsnz/metasync/internal/util"
	"opsnz/metasync/internal/zonesync"

	"github.com/spf13/cobra"
)

// addRecordFlags registers the flags shared by the create and delete
// subcommands.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Record name relative to the zone (leave empty or use @ for the apex)")
	cmd.Flags().String("type", "", "Record type (A, AAAA, CNAME, MX, NS, TXT, CAA) [required]")
	cmd.Flags().String("value", "", "Record value (IP address, hostname, text value, etc.) [required]")
	cmd.Flags().Int("ttl", 0, "Time-to-live in seconds (default: 3600)")
	cmd.Flags().Int("priority", 0, "MX preference (ignored for other types)")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("value")
}

// recordFromFlags validates the record flags and builds the record set a
// single create or delete operates on.
func recordFromFlags(cmd *cobra.Command, domainName string) (*zonesync.RRSet, error) {
	if err := util.ValidateDomainName(domainName); err != nil {
		return nil, err
	}

	name, _ := cmd.Flags().GetString("name")
	rtype, _ := cmd.Flags().GetString("type")
	value, _ := cmd.Flags().GetString("value")
	ttl, _ := cmd.Flags().GetInt("ttl")
	priority, _ := cmd.Flags().GetInt("priority")

	recordType := metaname.RecordType(strings.ToUpper(strings.TrimSpace(rtype)))
	if err := zonesync.ValidateType(recordType); err != nil {
		return nil, err
	}

	value = strings.TrimSpace(value)
	if err := zonesync.ValidateContent(recordType, value); err != nil {
		return nil, err
	}

	if name == "@" {
		name = ""
	}

	rr := &zonesync.RRSet{Name: name, Type: recordType, TTL: ttl}
	switch recordType {
	case metaname.RecordTypeCNAME, metaname.RecordTypeNS:
		rr.Value = value
	case metaname.RecordTypeMX:
		rr.Values = []any{zonesync.MXValue{Exchange: value, Preference: priority}}
	default:
		rr.Values = []any{value}
	}
	return rr, nil
}

// describeRecord renders a one-line summary for confirmations and output.
func describeRecord(domainName string, rr *zonesync.RRSet) string {
	owner := domainName
	if rr.Name != "" {
		owner = rr.Name + "." + domainName
	}
	return string(rr.Type) + " " + owner + " -> " + strings.Join(rr.DisplayValues(), ", ")
}
