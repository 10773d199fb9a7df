package types

import (
	"time"
)

// ServiceRecord aggregates the running containers of one Compose service
// within one project. It is the unit the cache stores and the DNS layer
// answers from.
type ServiceRecord struct {
	ContainerIDs  map[string]string // replica ordinal -> container ID
	ServiceName   string
	ProjectName   string
	IPv4Addresses []string
	IPv6Addresses []string
	LastUpdated   time.Time
}

// Age returns how long ago the record was built.
func (r *ServiceRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.LastUpdated)
}

// RecordKey builds the cache key for a service. Keys double as the DNS names
// the daemon answers: <service>.<project>.<root domain>.
func RecordKey(service, project, rootDomain string) string {
	return service + "." + project + "." + rootDomain
}

// NetworkAttachment is one network a container is connected to, with the
// addresses the runtime reported for it. Either address may be empty.
type NetworkAttachment struct {
	Network string
	IPv4    string
	IPv6    string
}

// ContainerInfo is the runtime-neutral view of a running container: its
// identity, its labels, and its per-network addresses. Attachments are sorted
// by network name so address order is stable across listings.
type ContainerInfo struct {
	ID       string
	Labels   map[string]string
	Networks []NetworkAttachment
}
