/*
Package dns provides the DNS server that names Docker Compose containers.

This package implements an embedded DNS server that resolves
<service>.<project>.<root domain> names to the bridge-network addresses of
running Compose containers. Answers come from the container cache in
pkg/cache; the server itself never talks to Docker. Names outside the root
domain are refused, so the daemon is safe to wire into a stub resolver as
the handler for one zone only.

# Architecture

	Query: web.shop.dcdc (A)
	  ↓
	1. Server receives query on localhost:9953
	  ↓
	2. Zone mux: name ends in .dcdc → zone handler
	   (anything else → REFUSED)
	  ↓
	3. Shape check: exactly <service>.<project> before the root
	   (wrong shape → NXDOMAIN)
	  ↓
	4. Resolver looks the name up in the cache
	   (miss or stale record triggers one cache rebuild)
	  ↓
	5. A/AAAA records built from the service's addresses
	  ↓
	6. Response returned with TTL = time until the record goes stale

# Query Outcomes

Every query lands in exactly one of four outcomes:

	answered:  record found, addresses of the requested family exist
	nodata:    NOERROR with no answers; the name exists but has no
	           addresses of that family, or the type is not A/AAAA
	nxdomain:  wrong shape for the zone, or no such service is running
	refused:   the name is outside the root domain

The split matters for clients: NXDOMAIN ends resolution, NODATA lets a
dual-stack client fall back to the other family, and REFUSED tells a
misconfigured stub resolver this server does not recurse.

# Record Format

	web.shop.dcdc.        42    IN    A    172.18.0.5
	│                     │                │
	│                     │                └─ container bridge address
	│                     └────────────────── seconds until the cache
	│                                         record counts as stale
	└──────────────────────────────────────── query name echoed back

The TTL is derived, not fixed: a record fresh out of a rebuild advertises
the full stale threshold (60s by default) and counts down as the record
ages. Clients therefore never cache an answer past the point where the
server itself would refresh it. Services scaled to multiple replicas
return one record per container address.

# Usage

Starting the server:

	store := cache.NewStore(source, cache.StoreConfig{RootDomain: "dcdc"})

	server := dns.NewServer(store, &dns.Config{
		ListenAddr: "localhost:9953",
		Net:        "udp",
		RootDomain: "dcdc",
	})

	if err := server.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer server.Stop()

Querying from a shell:

	$ dig @localhost -p 9953 web.shop.dcdc

	;; ANSWER SECTION:
	web.shop.dcdc. 60 IN A 172.18.0.5
	web.shop.dcdc. 60 IN A 172.18.0.6

Programmatic resolution:

	resolver := dns.NewResolver(store)
	answers, found := resolver.Resolve(ctx, "web.shop.dcdc.", dns.TypeA)

# Integration Points

This package integrates with:

  - pkg/cache: every lookup goes through Store.Resolve, which owns
    staleness and rebuild policy
  - pkg/metrics: per-query counters by type and outcome, latency
    histogram, and the dns health component
  - pkg/config: cmd/dcdc maps the daemon config onto Config
  - systemd-resolved or dnsmasq: point the root domain at this listener

# Design Notes

The server is authoritative for its zone and does no forwarding. Compose
project and service names are lowercase by Compose's own rules, so lookups
fold the query name to lower case; case-randomizing resolvers get the case
they sent echoed back in the answer while the cache key stays canonical.

Only the first question of a message is answered. Multi-question queries
are not a thing real resolvers send, and answering the first matches how
the daemon has always behaved.
*/
package dns
