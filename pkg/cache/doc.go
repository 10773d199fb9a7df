/*
Package cache holds the container-address cache the DNS server answers from.

The cache is a map of service records keyed by <service>.<project>.<root
domain>, built wholesale from one Docker container listing. Lookups are
cheap map reads; the container runtime is only consulted when a lookup
misses or finds its record older than the stale threshold. dcdc has no
background refresher: query traffic is what keeps the cache warm, and an
idle daemon never lists containers.

# Architecture

	Resolve(key)
	  ↓
	┌───────────────────────────────────────────────┐
	│ 1. Read lock: record present and fresh?       │──yes──▶ answer
	└───────────────────┬───────────────────────────┘
	                    │ miss or stale
	                    ▼
	┌───────────────────────────────────────────────┐
	│ 2. Rebuild (serialized, at most one per call) │
	│    - list containers from the runtime         │
	│    - index snapshot into new record map       │
	│    - swap map under write lock                │
	│    - on error: keep the old map               │
	└───────────────────┬───────────────────────────┘
	                    ▼
	┌───────────────────────────────────────────────┐
	│ 3. Re-read the (possibly unchanged) map       │──▶ answer or miss
	└───────────────────────────────────────────────┘

# Staleness Policy

Records carry the timestamp of the build that produced them. A record older
than the stale threshold (60s by default) is not trusted: the next lookup
that touches it rebuilds the whole cache first. The rebuild is wholesale
rather than per-record because one container listing prices in all
services, and partial refreshes would let records of the same snapshot
drift apart.

A failed rebuild keeps the previous records in place. A stale answer about
a container that was running a minute ago beats no answer while the Docker
daemon restarts; if the container really is gone, the record disappears
with the next successful rebuild.

# Concurrency

Reads take an RWMutex read lock and return the shared record pointer;
records are never mutated after publication, so handing them out is safe.
Rebuilds are serialized on a second mutex, and each waiter records when it
decided to rebuild: a rebuild that started after that decision already
reflects the missing state, so the waiter skips its own runtime round-trip
instead of stampeding the daemon. One burst of queries for a cold name
costs one container listing.

# Usage

	source, err := runtime.NewDockerSource("")
	if err != nil {
		log.Fatal(err)
	}

	store := cache.NewStore(source, cache.StoreConfig{
		RootDomain:     "dcdc",
		StaleThreshold: 60 * time.Second,
		QueryTimeout:   5 * time.Second,
	})

	rec, ok := store.Resolve(ctx, "web.shop.dcdc")
	if ok {
		fmt.Println(rec.IPv4Addresses)
	}

Build is exported for callers that want the indexing step without the
store, such as one-shot inspection tools:

	records := cache.Build(containers, "dcdc")

# Integration Points

This package integrates with:

  - pkg/runtime: Source supplies the container snapshots
  - pkg/types: ServiceRecord and ContainerInfo definitions
  - pkg/dns: the resolver calls Resolve for every query in the zone
  - pkg/metrics: rebuild counters, duration histogram, and service gauge

# Error Handling

Resolve never returns an error; failure shows up as a miss or as a stale
record, which is all a DNS answer can express anyway. Listing errors are
logged, counted in dcdc_cache_rebuild_failures_total, and swallowed. The
QueryTimeout bound keeps a wedged Docker daemon from pinning query
goroutines past their usefulness.
*/
package cache
