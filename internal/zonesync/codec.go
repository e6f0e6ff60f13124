package zonesync

import (
	"fmt"
	"strings"

	"opsnz/metasync/internal/metaname"
)

// ensureTrailingDot appends a dot iff the value is non-empty and does not
// already end with one. Exchange and target names leave the codec fully
// qualified.
func ensureTrailingDot(value string) string {
	if value == "" || strings.HasSuffix(value, ".") {
		return value
	}
	return value + "."
}

func escapeTXT(value string) string {
	return strings.ReplaceAll(value, ";", `\;`)
}

func unescapeTXT(value string) string {
	return strings.ReplaceAll(value, `\;`, ";")
}

// normalizeValue trims string values; other value shapes pass through.
func normalizeValue(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// isBlank reports whether a value carries no usable content.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// fragmentFromRecord maps one flat provider record onto an unaggregated
// record-set fragment. The owner name is left absolute; relativization
// happens during reconciliation.
func fragmentFromRecord(record metaname.ZoneRecord) RRSet {
	frag := RRSet{Type: record.Type, TTL: record.TTL}
	switch record.Type {
	case metaname.RecordTypeMX:
		preference := 0
		if record.Aux != nil {
			preference = *record.Aux
		}
		frag.Values = []any{MXValue{
			Exchange:   ensureTrailingDot(record.Data),
			Preference: preference,
		}}
	case metaname.RecordTypeCAA:
		frag.Values = []any{record.Data}
	case metaname.RecordTypeTXT:
		frag.Values = []any{unescapeTXT(record.Data)}
	case metaname.RecordTypeCNAME, metaname.RecordTypeNS:
		frag.Value = ensureTrailingDot(record.Data)
	default:
		frag.Values = []any{record.Data}
	}
	return frag
}

// recordsFromRRSet maps one record set onto the flat provider records that
// realise it. References are always empty; the provider assigns them on
// creation.
func recordsFromRRSet(rr RRSet) ([]metaname.ZoneRecord, error) {
	if rr.Type == "" {
		return nil, fmt.Errorf("record set is missing a type")
	}
	rtype := metaname.RecordType(strings.ToUpper(string(rr.Type)))
	name := rr.Name
	if name == "" {
		name = "@"
	}
	ttl := rr.TTL
	if ttl <= 0 {
		ttl = metaname.DefaultTTL
	}

	var records []metaname.ZoneRecord
	switch rtype {
	case metaname.RecordTypeMX:
		for _, value := range rr.Values {
			exchange, preference, err := mxFields(value)
			if err != nil {
				return nil, err
			}
			records = append(records, metaname.ZoneRecord{
				Name: name,
				Type: rtype,
				Data: ensureTrailingDot(exchange),
				TTL:  ttl,
				Aux:  preference,
			})
		}
	case metaname.RecordTypeTXT:
		for _, value := range rr.Values {
			records = append(records, metaname.ZoneRecord{
				Name: name,
				Type: rtype,
				Data: escapeTXT(stringify(value)),
				TTL:  ttl,
			})
		}
	case metaname.RecordTypeCAA:
		for _, value := range rr.Values {
			records = append(records, metaname.ZoneRecord{
				Name: name,
				Type: rtype,
				Data: caaData(value),
				TTL:  ttl,
			})
		}
	default:
		value := any(rr.Value)
		if isBlank(value) && len(rr.Values) > 0 {
			value = rr.Values[0]
		}
		data := stringify(normalizeValue(value))
		if rtype == metaname.RecordTypeCNAME || rtype == metaname.RecordTypeNS {
			data = ensureTrailingDot(data)
		}
		records = append(records, metaname.ZoneRecord{
			Name: name,
			Type: rtype,
			Data: data,
			TTL:  ttl,
		})
	}
	return records, nil
}

// mxFields extracts the exchange and preference from an MX value, which
// may be an MXValue or a loosely keyed map. Both exchange/value and
// preference/priority key spellings occur in the wild.
func mxFields(value any) (string, *int, error) {
	switch v := value.(type) {
	case MXValue:
		preference := v.Preference
		return v.Exchange, &preference, nil
	case map[string]any:
		exchange, ok := v["exchange"]
		if !ok || isBlank(exchange) {
			exchange = v["value"]
		}
		raw, ok := v["preference"]
		if !ok || raw == nil {
			raw = v["priority"]
		}
		var preference *int
		if raw != nil {
			n, err := toInt(raw)
			if err != nil {
				return "", nil, fmt.Errorf("invalid MX preference %v: %w", raw, err)
			}
			preference = &n
		}
		return stringify(exchange), preference, nil
	default:
		return stringify(value), nil, nil
	}
}

// caaData renders a CAA value as the provider's pre-formatted
// "flags tag value" string. Absent flags default to "0"; empty tag and
// value are omitted.
func caaData(value any) string {
	switch v := value.(type) {
	case CAAValue:
		flags := v.Flags
		if flags == "" {
			flags = "0"
		}
		parts := []string{flags}
		if v.Tag != "" {
			parts = append(parts, v.Tag)
		}
		if v.Value != "" {
			parts = append(parts, v.Value)
		}
		return strings.Join(parts, " ")
	case map[string]any:
		flags := "0"
		if raw, ok := v["flags"]; ok && raw != nil {
			flags = stringify(raw)
		}
		parts := []string{flags}
		if tag := stringify(v["tag"]); tag != "" {
			parts = append(parts, tag)
		}
		if val := stringify(v["value"]); val != "" {
			parts = append(parts, val)
		}
		return strings.Join(parts, " ")
	default:
		return stringify(value)
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		var out int
		if _, err := fmt.Sscanf(n, "%d", &out); err != nil {
			return 0, err
		}
		return out, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
