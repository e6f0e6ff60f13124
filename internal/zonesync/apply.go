package zonesync

import (
	"context"
	"fmt"
	"strings"
)

// Apply executes an ordered batch of changes against the provider. It
// returns whether anything was applied; an empty batch is a no-op. The
// first failing change aborts the batch, leaving the provider and the
// reference cache possibly out of step, so the cache is only dropped
// after the whole batch succeeds.
func (s *Syncer) Apply(ctx context.Context, domain string, changes []Change) (bool, error) {
	if len(changes) == 0 {
		return false, nil
	}
	domain = strings.TrimSuffix(domain, ".")
	if domain == "" {
		return false, fmt.Errorf("domain is required")
	}

	for _, change := range changes {
		switch change.Kind {
		case ChangeCreate:
			if err := s.applyCreate(ctx, domain, change.New); err != nil {
				return false, err
			}
		case ChangeDelete:
			if err := s.applyDelete(ctx, domain, change.Existing); err != nil {
				return false, err
			}
		case ChangeUpdate:
			// Metaname has an update primitive, but upstream planners
			// express updates as delete+create pairs; reusing that path
			// keeps a single code path for both shapes.
			if err := s.applyDelete(ctx, domain, change.Existing); err != nil {
				return false, err
			}
			if err := s.applyCreate(ctx, domain, change.New); err != nil {
				return false, err
			}
		default:
			return false, fmt.Errorf("unsupported change kind %q", change.Kind)
		}
	}

	s.dropCache(domain)
	return true, nil
}

func (s *Syncer) applyCreate(ctx context.Context, domain string, rr *RRSet) error {
	if rr == nil {
		return fmt.Errorf("create change is missing the new record set")
	}
	records, err := recordsFromRRSet(*rr)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := s.createWithRetries(ctx, domain, record); err != nil {
			return err
		}
	}
	return nil
}

// applyDelete resolves each record's provider reference through the cache
// and deletes it. A target absent from the cache is skipped without error;
// it no longer exists remotely.
func (s *Syncer) applyDelete(ctx context.Context, domain string, rr *RRSet) error {
	if rr == nil {
		return fmt.Errorf("delete change is missing the existing record set")
	}
	records, err := recordsFromRRSet(*rr)
	if err != nil {
		return err
	}
	cache, err := s.ensureCache(ctx, domain)
	if err != nil {
		return err
	}
	for _, record := range records {
		cached, ok := cache[keyFor(record)]
		if !ok || cached.Reference == "" {
			s.log.Info("delete target not found at provider, skipping",
				"domain", domain, "name", record.Name, "type", string(record.Type))
			continue
		}
		if err := s.deleteWithRetries(ctx, domain, cached.Reference); err != nil {
			return err
		}
	}
	return nil
}
