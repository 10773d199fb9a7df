package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cuemby/dcdc/pkg/log"
	"github.com/cuemby/dcdc/pkg/metrics"
	"github.com/cuemby/dcdc/pkg/runtime"
	"github.com/cuemby/dcdc/pkg/types"
)

// StoreConfig carries the tunables for a Store.
type StoreConfig struct {
	// RootDomain is the zone suffix baked into every record key, with no
	// leading or trailing dots (e.g. "dcdc").
	RootDomain string

	// StaleThreshold is how old a record may be before a lookup triggers
	// a rebuild. Defaults to 60s.
	StaleThreshold time.Duration

	// QueryTimeout bounds a single container listing. Defaults to 5s.
	QueryTimeout time.Duration
}

// Store holds the service records built from the most recent container
// snapshot and refreshes them wholesale when a lookup finds them missing
// or stale. Reads never block on the container runtime unless a rebuild
// is needed.
type Store struct {
	source runtime.Source
	config StoreConfig

	mu      sync.RWMutex
	records map[string]*types.ServiceRecord

	// rebuildMu serializes rebuilds. lastAttempt lets a caller that blocked
	// on rebuildMu skip its own runtime round-trip when the rebuild it
	// waited on started after the caller's lookup.
	rebuildMu   sync.Mutex
	lastAttempt time.Time
}

// NewStore creates an empty store backed by the given container source.
func NewStore(source runtime.Source, cfg StoreConfig) *Store {
	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = 60 * time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	return &Store{
		source:  source,
		config:  cfg,
		records: make(map[string]*types.ServiceRecord),
	}
}

// StaleThreshold returns the age at which records stop being served
// without a refresh.
func (s *Store) StaleThreshold() time.Duration {
	return s.config.StaleThreshold
}

// Resolve returns the record for key. A fresh record is returned as-is; a
// missing or stale one triggers a rebuild of the whole map first, and the
// answer is whatever the rebuilt map holds. When the rebuild fails the
// previous records stay in place, so a stale record may come back rather
// than nothing.
func (s *Store) Resolve(ctx context.Context, key string) (*types.ServiceRecord, bool) {
	begin := time.Now()

	if rec, ok := s.lookup(key); ok && rec.Age(begin) <= s.config.StaleThreshold {
		return rec, true
	}

	s.rebuild(ctx, begin)
	return s.lookup(key)
}

func (s *Store) lookup(key string) (*types.ServiceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

// rebuild replaces the record map with a fresh container snapshot. begin is
// when the caller decided a rebuild was needed; an attempt newer than that
// already reflects the state the caller was missing.
func (s *Store) rebuild(ctx context.Context, begin time.Time) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if s.lastAttempt.After(begin) {
		return
	}

	logger := log.WithComponent("cache")
	logger.Info().Msg("populating cache")

	timer := metrics.NewTimer()

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	containers, err := s.source.ListContainers(ctx)
	if err != nil {
		s.lastAttempt = time.Now()
		metrics.CacheRebuildFailures.Inc()
		logger.Error().Err(err).Msg("container listing failed, keeping previous cache")
		return
	}

	records := Build(containers, s.config.RootDomain)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	// Stamped after the swap: a caller whose lookup missed before this
	// attempt is guaranteed to see its result.
	s.lastAttempt = time.Now()

	metrics.CacheRebuilds.Inc()
	metrics.CacheServices.Set(float64(len(records)))
	timer.ObserveDuration(metrics.CacheRebuildDuration)

	logger.Info().
		Int("containers", len(containers)).
		Int("services", len(records)).
		Msg("cache rebuilt")
}
