/*
Package config loads and validates the dcdc daemon configuration.

Configuration comes from three layers with increasing precedence: built-in
defaults, an optional YAML file, and command-line flags. This package owns
the first two; flag overrides are applied by cmd/dcdc after loading.

# Configuration File

All fields are optional. A complete file:

	host: localhost            # bind address for the DNS listener
	port: 9953                 # bind port
	transport: udp             # udp or tcp
	root_domain: dcdc          # zone answered, dots trimmed at the edges
	stale_threshold: 60s       # max record age before a lookup rebuilds
	query_timeout: 5s          # cap on one Docker listing round-trip
	docker_host: ""            # Docker daemon address, empty = environment
	metrics_addr: ""           # metrics/health HTTP listener, empty = off
	log_level: info            # debug, info, warn, error
	log_json: false            # JSON logs instead of console output

Durations accept Go duration strings ("90s", "2m") or bare numbers, which
are taken as seconds.

# Defaults

The defaults bind localhost:9953 over UDP and answer the "dcdc" zone with a
60 second staleness window. The port sits above 1024 so the daemon runs
unprivileged; production setups that want port 53 set it explicitly and grant
CAP_NET_BIND_SERVICE.

# Root Domain Normalization

The root domain is configured the way it reads in queries, so ".dcdc" and
"dcdc" mean the same zone; Normalize trims leading and trailing dots.
Interior dots survive, which permits multi-label roots:

	root_domain: docker.internal
	# answers web.shop.docker.internal

# Usage

Loading a file:

	cfg, err := config.Load("/etc/dcdc/dcdc.yaml")
	if err != nil {
		return err
	}

Defaults only, then overrides:

	cfg := config.Default()
	cfg.Port = port
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

The DNS listener address:

	addr := cfg.ListenAddr() // "localhost:9953"

# Validation

Validate rejects configurations the daemon cannot serve with: ports outside
1-65535, transports other than udp/tcp, and a root domain that is empty
after trimming. Everything else is permissive; an unparsable docker_host
surfaces later as a connection error with more context.

# See Also

  - cmd/dcdc for the flag surface layered on top
  - pkg/cache for how StaleThreshold and QueryTimeout are consumed
  - pkg/dns for how RootDomain and the listen address are consumed
*/
package config
