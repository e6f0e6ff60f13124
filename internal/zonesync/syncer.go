// Package zonesync reconciles zone state between grouped record sets and
// Metaname's flat per-value records.
//
// The Syncer type wraps a provider client and adds the conversion,
// aggregation, and normalisation passes in both directions: Populate reads
// the provider's records into relativized, merged record sets; Apply
// executes planned changes against the provider, resolving record
// references through a per-domain cache. CLI commands construct a Syncer
// from a resolved client and call it rather than calling the client
// directly.
package zonesync

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"opsnz/metasync/internal/metaname"
	"opsnz/metasync/internal/retry"
)

// Provider is the subset of the Metaname client the Syncer drives.
type Provider interface {
	ListZoneRecords(ctx context.Context, domain string) ([]metaname.ZoneRecord, error)
	CreateZoneRecord(ctx context.Context, domain string, record metaname.ZoneRecord) error
	DeleteZoneRecord(ctx context.Context, domain, reference string) error
}

// Syncer reconciles record sets against a provider. It keeps a per-domain
// reference cache so deletes can resolve provider-assigned references.
// A Syncer may be shared by goroutines working on distinct domains;
// concurrent operations on the same domain must be synchronised externally.
type Syncer struct {
	provider Provider
	retryCfg retry.Config
	log      logr.Logger

	mu    sync.Mutex
	cache map[string]map[refKey]metaname.ZoneRecord
}

func (s *Syncer) cachedRefs(domain string) (map[refKey]metaname.ZoneRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache, ok := s.cache[domain]
	return cache, ok
}

func (s *Syncer) storeCache(domain string, cache map[refKey]metaname.ZoneRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[domain] = cache
}

func (s *Syncer) dropCache(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, domain)
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithRetries sets the total attempt count for provider calls. Values
// below 1 are treated as 1.
func WithRetries(n int) Option {
	return func(s *Syncer) {
		s.retryCfg.Attempts = n
	}
}

// WithBackoff sets the base delay between retry attempts.
func WithBackoff(d time.Duration) Option {
	return func(s *Syncer) {
		if d < 0 {
			d = 0
		}
		s.retryCfg.Backoff = d
	}
}

// WithSleep substitutes the wait used between retries; tests inject a
// recording stub here.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Syncer) {
		s.retryCfg.Sleep = sleep
	}
}

// WithLogger attaches a logger for skip and overwrite warnings.
func WithLogger(log logr.Logger) Option {
	return func(s *Syncer) {
		s.log = log
	}
}

// New returns a Syncer backed by the given provider.
func New(provider Provider, opts ...Option) *Syncer {
	s := &Syncer{
		provider: provider,
		retryCfg: retry.DefaultConfig(),
		log:      logr.Discard(),
		cache:    map[string]map[refKey]metaname.ZoneRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Only provider-level failures are retried; anything else indicates a
// caller bug and propagates immediately.
func (s *Syncer) listWithRetries(ctx context.Context, domain string) ([]metaname.ZoneRecord, error) {
	var records []metaname.ZoneRecord
	err := retry.Do(ctx, s.retryCfg, metaname.IsProviderError, func() error {
		var err error
		records, err = s.provider.ListZoneRecords(ctx, domain)
		return err
	})
	return records, err
}

func (s *Syncer) createWithRetries(ctx context.Context, domain string, record metaname.ZoneRecord) error {
	return retry.Do(ctx, s.retryCfg, metaname.IsProviderError, func() error {
		return s.provider.CreateZoneRecord(ctx, domain, record)
	})
}

func (s *Syncer) deleteWithRetries(ctx context.Context, domain, reference string) error {
	return retry.Do(ctx, s.retryCfg, metaname.IsProviderError, func() error {
		return s.provider.DeleteZoneRecord(ctx, domain, reference)
	})
}
