package dns

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/cuemby/dcdc/pkg/cache"
	"github.com/cuemby/dcdc/pkg/log"
	"github.com/cuemby/dcdc/pkg/types"
	"github.com/miekg/dns"
)

// Resolver turns query names into resource records answered from the
// container cache.
type Resolver struct {
	store *cache.Store
}

// NewResolver creates a resolver backed by the given cache store.
func NewResolver(store *cache.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up qname in the cache and builds the answer section for
// qtype. found is false when no service record exists for the name. A true
// return with no answers means the record exists but has no addresses of
// the requested family.
func (r *Resolver) Resolve(ctx context.Context, qname string, qtype uint16) (answers []dns.RR, found bool) {
	// Cache keys are lowercase without the trailing dot; queries arrive in
	// any case the client felt like sending.
	key := strings.ToLower(strings.TrimSuffix(qname, "."))

	log.Logger.Debug().
		Str("component", "dns.resolver").
		Str("query", key).
		Msg("resolving query")

	rec, ok := r.store.Resolve(ctx, key)
	if !ok {
		return nil, false
	}

	ttl := recordTTL(rec, r.store.StaleThreshold(), time.Now())
	fqdn := dns.Fqdn(qname)

	switch qtype {
	case dns.TypeA:
		for _, addr := range rec.IPv4Addresses {
			ip := net.ParseIP(addr)
			if ip == nil || ip.To4() == nil {
				r.warnBadAddress(rec, addr, "IPv4")
				continue
			}
			answers = append(answers, &dns.A{
				Hdr: dns.RR_Header{Name: fqdn, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: ttl},
				A:   ip,
			})
		}
	case dns.TypeAAAA:
		for _, addr := range rec.IPv6Addresses {
			ip := net.ParseIP(addr)
			if ip == nil || ip.To4() != nil {
				r.warnBadAddress(rec, addr, "IPv6")
				continue
			}
			answers = append(answers, &dns.AAAA{
				Hdr:  dns.RR_Header{Name: fqdn, Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: ttl},
				AAAA: ip,
			})
		}
	}

	return answers, true
}

func (r *Resolver) warnBadAddress(rec *types.ServiceRecord, addr, family string) {
	log.Logger.Warn().
		Str("component", "dns.resolver").
		Str("service", rec.ServiceName).
		Str("project", rec.ProjectName).
		Str("address", addr).
		Str("family", family).
		Msg("skipping address with unexpected format")
}

// recordTTL derives the answer TTL from the record's age: the whole seconds
// left until the record would count as stale, never negative. A record
// straight out of a rebuild advertises the full threshold.
func recordTTL(rec *types.ServiceRecord, threshold time.Duration, now time.Time) uint32 {
	remaining := int64(threshold/time.Second) - int64(rec.Age(now)/time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return uint32(remaining)
}
