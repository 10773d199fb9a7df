package dns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cuemby/dcdc/pkg/cache"
	"github.com/cuemby/dcdc/pkg/log"
	"github.com/cuemby/dcdc/pkg/metrics"
	"github.com/miekg/dns"
)

const (
	// DefaultListenAddr keeps the daemon clear of port 53 so it can run
	// next to systemd-resolved without privileges.
	DefaultListenAddr = "localhost:9953"

	// DefaultNet is the transport the server listens on
	DefaultNet = "udp"

	// DefaultRootDomain is the zone suffix for container names
	DefaultRootDomain = "dcdc"
)

// Server answers <service>.<project>.<root domain> queries from the
// container cache and refuses everything outside the zone.
type Server struct {
	resolver   *Resolver
	dnsServer  *dns.Server
	listenAddr string
	net        string
	rootDomain string
	mu         sync.RWMutex
	running    bool
}

// Config holds DNS server configuration
type Config struct {
	ListenAddr string // Address to listen on (default: localhost:9953)
	Net        string // Transport, "udp" or "tcp" (default: udp)
	RootDomain string // Zone suffix without dots (default: "dcdc")
}

// NewServer creates a new DNS server answering from the given cache store.
func NewServer(store *cache.Store, config *Config) *Server {
	if config == nil {
		config = &Config{}
	}

	if config.ListenAddr == "" {
		config.ListenAddr = DefaultListenAddr
	}
	if config.Net == "" {
		config.Net = DefaultNet
	}
	if config.RootDomain == "" {
		config.RootDomain = DefaultRootDomain
	}

	return &Server{
		resolver:   NewResolver(store),
		listenAddr: config.ListenAddr,
		net:        config.Net,
		rootDomain: strings.Trim(config.RootDomain, "."),
	}
}

// Start starts the DNS server
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("DNS server already running")
	}
	s.running = true
	s.mu.Unlock()

	log.Logger.Info().
		Str("component", "dns").
		Str("address", s.listenAddr).
		Str("net", s.net).
		Str("root_domain", s.rootDomain).
		Msg("starting DNS server")

	mux := dns.NewServeMux()
	mux.HandleFunc(dns.Fqdn(s.rootDomain), s.handleZoneQuery)
	mux.HandleFunc(".", s.handleOutOfZone)

	s.dnsServer = &dns.Server{
		Addr:    s.listenAddr,
		Net:     s.net,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.dnsServer.ListenAndServe(); err != nil {
			log.Logger.Error().
				Err(err).
				Str("component", "dns").
				Msg("DNS server error")
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		metrics.UpdateComponent("dns", false, err.Error())
		return err
	case <-ctx.Done():
		return s.Stop()
	default:
		log.Logger.Info().
			Str("component", "dns").
			Str("address", s.listenAddr).
			Msg("DNS server started successfully")
		metrics.UpdateComponent("dns", true, "listening on "+s.listenAddr)
		return nil
	}
}

// Stop stops the DNS server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	log.Logger.Info().
		Str("component", "dns").
		Msg("stopping DNS server")

	if s.dnsServer != nil {
		if err := s.dnsServer.Shutdown(); err != nil {
			log.Logger.Error().
				Err(err).
				Str("component", "dns").
				Msg("error stopping DNS server")
			return err
		}
	}

	s.running = false
	metrics.UpdateComponent("dns", false, "stopped")

	log.Logger.Info().
		Str("component", "dns").
		Msg("DNS server stopped")

	return nil
}

// IsRunning returns true if the DNS server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// handleZoneQuery answers a query inside the root domain.
func (s *Server) handleZoneQuery(w dns.ResponseWriter, r *dns.Msg) {
	msg := &dns.Msg{}
	msg.SetReply(r)
	msg.Authoritative = true

	if len(r.Question) == 0 {
		s.write(w, msg)
		return
	}

	q := r.Question[0]
	qtype := dns.TypeToString[q.Qtype]

	log.Logger.Debug().
		Str("component", "dns").
		Str("query", q.Name).
		Str("type", qtype).
		Msg("query received")

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DNSQueryDuration)

	// Only <service>.<project>.<root domain> can exist in the zone.
	if _, _, ok := splitQueryName(q.Name, s.rootDomain); !ok {
		msg.Rcode = dns.RcodeNameError
		metrics.DNSQueries.WithLabelValues(qtype, metrics.OutcomeNXDomain).Inc()
		s.write(w, msg)
		return
	}

	if q.Qtype != dns.TypeA && q.Qtype != dns.TypeAAAA {
		metrics.DNSQueries.WithLabelValues(qtype, metrics.OutcomeNoData).Inc()
		s.write(w, msg)
		return
	}

	answers, found := s.resolver.Resolve(context.Background(), q.Name, q.Qtype)
	switch {
	case !found:
		msg.Rcode = dns.RcodeNameError
		metrics.DNSQueries.WithLabelValues(qtype, metrics.OutcomeNXDomain).Inc()
	case len(answers) == 0:
		metrics.DNSQueries.WithLabelValues(qtype, metrics.OutcomeNoData).Inc()
	default:
		msg.Answer = answers
		metrics.DNSQueries.WithLabelValues(qtype, metrics.OutcomeAnswered).Inc()
	}

	log.Logger.Debug().
		Str("component", "dns").
		Str("query", q.Name).
		Int("answers", len(msg.Answer)).
		Str("rcode", dns.RcodeToString[msg.Rcode]).
		Msg("query handled")

	s.write(w, msg)
}

// handleOutOfZone refuses queries for names outside the root domain.
func (s *Server) handleOutOfZone(w dns.ResponseWriter, r *dns.Msg) {
	msg := &dns.Msg{}
	msg.SetReply(r)
	msg.Rcode = dns.RcodeRefused

	if len(r.Question) > 0 {
		q := r.Question[0]
		metrics.DNSQueries.WithLabelValues(dns.TypeToString[q.Qtype], metrics.OutcomeRefused).Inc()
		log.Logger.Debug().
			Str("component", "dns").
			Str("query", q.Name).
			Msg("query outside root domain refused")
	}

	s.write(w, msg)
}

func (s *Server) write(w dns.ResponseWriter, msg *dns.Msg) {
	if err := w.WriteMsg(msg); err != nil {
		log.Logger.Error().
			Err(err).
			Str("component", "dns").
			Msg("failed to write DNS response")
	}
}

// splitQueryName extracts the service and project labels from a query name
// of the form <service>.<project>.<rootDomain>. ok is false when the name
// does not have exactly that shape.
func splitQueryName(qname, rootDomain string) (service, project string, ok bool) {
	name := strings.ToLower(strings.TrimSuffix(qname, "."))

	suffix := "." + rootDomain
	if !strings.HasSuffix(name, suffix) {
		return "", "", false
	}

	labels := strings.Split(strings.TrimSuffix(name, suffix), ".")
	if len(labels) != 2 || labels[0] == "" || labels[1] == "" {
		return "", "", false
	}

	return labels[0], labels[1], true
}
