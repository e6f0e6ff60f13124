package zonesync

import (
	"context"

	"opsnz/metasync/internal/metaname"
)

// refKey identifies a provider record by its value identity. Two records
// with the same key are interchangeable for deletion purposes.
type refKey struct {
	name   string
	rtype  metaname.RecordType
	data   string
	aux    int
	auxSet bool
}

func keyFor(record metaname.ZoneRecord) refKey {
	key := refKey{
		name:  record.Name,
		rtype: record.Type,
		data:  record.Data,
	}
	if record.Aux != nil {
		key.aux = *record.Aux
		key.auxSet = true
	}
	return key
}

// ensureCache returns the reference cache for domain, building it from a
// fresh listing when none exists. Apply drops the cache after a successful
// batch, so a rebuilt cache is never older than the last apply.
func (s *Syncer) ensureCache(ctx context.Context, domain string) (map[refKey]metaname.ZoneRecord, error) {
	if cache, ok := s.cachedRefs(domain); ok {
		return cache, nil
	}

	records, err := s.listWithRetries(ctx, domain)
	if err != nil {
		return nil, err
	}
	cache := make(map[refKey]metaname.ZoneRecord, len(records))
	for _, record := range records {
		cache[keyFor(record)] = record
	}
	s.storeCache(domain, cache)
	return cache, nil
}
