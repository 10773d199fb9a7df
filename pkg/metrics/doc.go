/*
Package metrics provides Prometheus metrics and health endpoints for dcdc.

The metrics package defines and registers all dcdc metrics using the
Prometheus client library, tracks per-component health for the readiness
and liveness probes, and serves everything from one small HTTP server so
the DNS listener itself stays untouched by observability traffic.

# Architecture

	┌─────────────────── OBSERVABILITY ────────────────────┐
	│                                                        │
	│  ┌──────────────────────────────────────────┐        │
	│  │         Prometheus Registry               │        │
	│  │  - Global DefaultRegistry                 │        │
	│  │  - MustRegister at package init           │        │
	│  │  - Automatic Go runtime metrics           │        │
	│  └──────────────────┬───────────────────────┘        │
	│                     │                                  │
	│  ┌──────────────────▼───────────────────────┐        │
	│  │          Health Checker                    │        │
	│  │  - Per-component status (docker, dns)     │        │
	│  │  - Collector pings the Docker daemon      │        │
	│  └──────────────────┬───────────────────────┘        │
	│                     │                                  │
	│  ┌──────────────────▼───────────────────────┐        │
	│  │           HTTP Server                      │        │
	│  │  - /metrics  Prometheus exposition        │        │
	│  │  - /health   full component report        │        │
	│  │  - /ready    readiness probe              │        │
	│  │  - /live     liveness probe               │        │
	│  └────────────────────────────────────────────┘       │
	└────────────────────────────────────────────────────┘

# Metrics Catalog

Cache Metrics:

dcdc_cache_rebuilds_total:
  - Type: Counter
  - Description: Completed cache rebuilds from Docker container state

dcdc_cache_rebuild_failures_total:
  - Type: Counter
  - Description: Cache rebuilds abandoned because container listing failed

dcdc_cache_rebuild_duration_seconds:
  - Type: Histogram
  - Description: Time spent listing containers and rebuilding the cache

dcdc_cache_services:
  - Type: Gauge
  - Description: Service records in the cache after the last rebuild
  - Example: dcdc_cache_services 12

DNS Metrics:

dcdc_dns_queries_total{type, outcome}:
  - Type: Counter
  - Description: DNS queries by record type and resolution outcome
  - Labels: type (A/AAAA/...), outcome (answered/nodata/nxdomain/refused)
  - Example: dcdc_dns_queries_total{type="A",outcome="answered"} 42

dcdc_dns_query_duration_seconds:
  - Type: Histogram
  - Description: Time to resolve a query, including any cache rebuild

# Usage

Recording cache activity:

	timer := metrics.NewTimer()
	// ... rebuild the cache ...
	timer.ObserveDuration(metrics.CacheRebuildDuration)
	metrics.CacheRebuilds.Inc()
	metrics.CacheServices.Set(float64(len(records)))

Recording query outcomes:

	metrics.DNSQueries.WithLabelValues("A", metrics.OutcomeAnswered).Inc()

Serving the endpoints:

	srv := metrics.NewServer(":9090")
	go srv.Start()
	defer srv.Stop(context.Background())

Feeding health status:

	metrics.RegisterComponent("docker", true, "connected")

	collector := metrics.NewCollector(source)
	collector.Start()
	defer collector.Stop()

# Integration Points

This package integrates with:

  - pkg/cache: rebuild counters, duration, and service gauge
  - pkg/dns: query counters and latency histogram
  - pkg/runtime: the collector pings the Docker daemon for health
  - cmd/dcdc: starts the HTTP server when a metrics address is set
  - Prometheus: scrapes the /metrics endpoint

# Design Patterns

Package Init Registration:
  - All metrics registered in init() function
  - MustRegister panics on duplicate registration
  - No initialization required by callers

Label Discipline:
  - type and outcome are the only labels, both bounded
  - Query names never become labels; cardinality stays flat

Readiness:
  - docker and dns are the critical components
  - /ready returns 503 until both have reported healthy
  - /live always returns 200 while the process runs
*/
package metrics
