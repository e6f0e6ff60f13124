package zonesync

import (
	"context"
	"fmt"
	"strings"

	"opsnz/metasync/internal/metaname"
)

// Populate lists the domain's provider records and feeds the reconciled
// record sets into zone. It returns whether at least one record set was
// added. A domain the provider does not know yet reconciles as an empty
// zone rather than an error, so first-time zone creation can proceed.
func (s *Syncer) Populate(ctx context.Context, zone Zone) (bool, error) {
	domain := strings.TrimSuffix(zone.Name(), ".")
	if domain == "" {
		return false, fmt.Errorf("zone name is required")
	}

	records, err := s.listWithRetries(ctx, domain)
	if err != nil {
		if !metaname.IsDomainNotFound(err) {
			return false, err
		}
		s.log.Info("domain not found at provider, treating as empty zone", "domain", domain)
		records = nil
	}

	cache := make(map[refKey]metaname.ZoneRecord, len(records))

	type aggKey struct {
		owner string
		rtype metaname.RecordType
		ttl   int
	}
	aggregated := map[aggKey]*RRSet{}
	var order []aggKey

	for _, record := range records {
		cache[keyFor(record)] = record

		frag := fragmentFromRecord(record)
		if !s.filterFragment(&frag, record.Name) {
			continue
		}

		key := aggKey{owner: relativeOwner(record.Name, domain), rtype: frag.Type, ttl: frag.TTL}
		existing, ok := aggregated[key]
		if !ok {
			frag.Name = key.owner
			copied := frag
			aggregated[key] = &copied
			order = append(order, key)
			continue
		}

		for _, value := range frag.Values {
			if !containsValue(existing.Values, value) {
				existing.Values = append(existing.Values, value)
			}
		}
		if frag.Value != "" {
			if existing.Value != "" && existing.Value != frag.Value {
				s.log.Info("duplicate scalar record, keeping the later value",
					"owner", key.owner, "type", string(key.rtype),
					"previous", existing.Value, "kept", frag.Value)
			}
			existing.Value = frag.Value
		}
	}

	added := false
	for _, key := range order {
		entry := aggregated[key]
		if !s.filterFragment(entry, entry.Name) {
			continue
		}
		zone.AddRecord(*entry)
		added = true
	}

	s.storeCache(domain, cache)
	return added, nil
}

// filterFragment normalises the fragment's payload in place and reports
// whether anything usable remains. Blank values are logged and dropped
// rather than failing the zone; an entry left with no payload at all
// would corrupt the zone definition.
func (s *Syncer) filterFragment(frag *RRSet, owner string) bool {
	if owner == "" {
		owner = "@"
	}

	if frag.Value != "" {
		frag.Value = strings.TrimSpace(frag.Value)
		if frag.Value == "" {
			s.log.Info("skipping record with blank value", "owner", owner, "type", string(frag.Type))
			return false
		}
	}

	if frag.Values != nil {
		cleaned := frag.Values[:0]
		for _, value := range frag.Values {
			normalized := normalizeValue(value)
			if isBlank(normalized) {
				continue
			}
			cleaned = append(cleaned, normalized)
		}
		if len(cleaned) == 0 {
			s.log.Info("skipping record with no usable values", "owner", owner, "type", string(frag.Type))
			return false
		}
		frag.Values = cleaned
	}

	if frag.Value == "" && len(frag.Values) == 0 {
		s.log.Info("skipping record with no value payload", "owner", owner, "type", string(frag.Type))
		return false
	}
	return true
}

// relativeOwner rewrites an absolute owner name relative to the zone.
// The apex, "@", and the bare domain all map to the empty string; strict
// subdomains lose the domain suffix; anything else passes through.
func relativeOwner(name, domain string) string {
	owner := strings.TrimSuffix(name, ".")
	switch {
	case owner == "" || owner == "@":
		return ""
	case owner == domain:
		return ""
	case strings.HasSuffix(owner, "."+domain):
		return owner[:len(owner)-len(domain)-1]
	default:
		return owner
	}
}

func containsValue(values []any, candidate any) bool {
	for _, value := range values {
		if valuesEqual(value, candidate) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		if len(am) != len(bm) {
			return false
		}
		for k, v := range am {
			other, ok := bm[k]
			if !ok || !valuesEqual(v, other) {
				return false
			}
		}
		return true
	}
	return a == b
}
