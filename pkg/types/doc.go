/*
Package types defines the core data structures used throughout dcdc.

This package contains the domain model shared by the runtime, cache, and DNS
layers: the normalized view of a running container and the aggregated service
record the daemon answers queries from. Keeping these types dependency-free
lets every other package import them without cycles.

# Architecture

dcdc moves data through three representations:

	Docker API summary            (pkg/runtime input)
	        ↓ normalize
	ContainerInfo                 (this package)
	        ↓ aggregate
	ServiceRecord                 (this package)
	        ↓ render
	DNS resource records          (pkg/dns output)

ContainerInfo is what a runtime snapshot yields: one entry per running
container with its labels and per-network addresses. ServiceRecord is what
the cache stores: one entry per Compose service, merged across that service's
replica containers.

# Core Types

ServiceRecord:
  - ContainerIDs: replica ordinal -> container ID, for every container that
    contributed to the record
  - IPv4Addresses / IPv6Addresses: bridge addresses in discovery order
  - LastUpdated: when the record was built; drives staleness and TTL

ContainerInfo:
  - ID: the runtime's container ID
  - Labels: raw label map as reported by the runtime
  - Networks: attachments sorted by network name

NetworkAttachment:
  - Network: network name
  - IPv4 / IPv6: addresses on that network, either may be empty

# Cache Keys

Records are keyed by RecordKey, which is also the DNS name clients query:

	RecordKey("web", "shop", "dcdc")  // "web.shop.dcdc"

Two containers from different projects never share a key even when their
service names collide: "db.shop.dcdc" and "db.billing.dcdc" are distinct
records.

# Usage

Building a record key:

	key := types.RecordKey("web", "shop", "dcdc")

Checking record age:

	rec := &types.ServiceRecord{LastUpdated: builtAt}
	if rec.Age(time.Now()) > 60*time.Second {
		// stale, rebuild before answering
	}

# Invariants

  - A record's address lists contain only non-empty strings; empty runtime
    addresses are dropped during aggregation.
  - LastUpdated is set once when the record is created during a build and
    never touched when later containers merge into it.
  - ContainerInfo.Networks is sorted by network name, so two snapshots of the
    same daemon state aggregate to the same address order.

# Thread Safety

Types here carry no locks. A ServiceRecord is built single-threaded during a
cache rebuild and must be treated as read-only once published; the cache
layer (pkg/cache) enforces this by replacing whole maps rather than mutating
records in place.

# See Also

  - pkg/runtime for how ContainerInfo is produced from the Docker API
  - pkg/cache for how ServiceRecords are aggregated and stored
  - pkg/dns for how records are rendered into DNS answers
*/
package types
