/*
Package log provides structured logging for dcdc using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level for production debugging.

# Architecture

dcdc's logging system provides structured JSON logging with minimal overhead:

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐           │
	│  │            Global Logger                    │           │
	│  │  - Zerolog instance                         │           │
	│  │  - Initialized via log.Init()               │           │
	│  │  - Thread-safe for concurrent use           │           │
	│  └──────────────────┬─────────────────────────┘           │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐           │
	│  │           Configuration                     │           │
	│  │  - Level: debug/info/warn/error             │           │
	│  │  - Format: JSON or console (human)          │           │
	│  │  - Output: stdout, file, or custom writer   │           │
	│  └──────────────────┬─────────────────────────┘           │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐           │
	│  │         Component Loggers                   │           │
	│  │  - WithComponent("dns")                     │           │
	│  │  - WithComponent("cache")                   │           │
	│  │  - WithProject("shop")                      │           │
	│  └──────────────────┬─────────────────────────┘           │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐           │
	│  │            Log Output                       │           │
	│  │                                              │          │
	│  │  JSON Format:                               │           │
	│  │  {                                           │          │
	│  │    "level": "info",                         │           │
	│  │    "component": "cache",                    │           │
	│  │    "time": "2026-08-25T10:30:00Z",          │           │
	│  │    "message": "cache rebuilt"               │           │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │           │
	│  │  10:30AM INF cache rebuilt component=cache  │           │
	│  └────────────────────────────────────────────┘            │
	└────────────────────────────────────────────────────────────┘

# Component Conventions

Every subsystem logs with a "component" field so output can be filtered per
concern:

	dns           server lifecycle and query handling
	dns.resolver  record rendering and address parsing
	cache         rebuilds and per-container indexing
	metrics       metrics/health HTTP listener
	main          process bootstrap and shutdown

# Log Levels

Debug Level:
  - Per-query and per-container detail
  - Example: "cache: checking container" with container and key fields

Info Level:
  - Default production level; lifecycle events and rebuild summaries
  - Example: "cache rebuilt" with container and service counts

Warn Level:
  - Recoverable oddities, such as an address the runtime reported that does
    not parse
  - Example: "skipping address with unexpected format"

Error Level:
  - Failed operations the daemon survives, most importantly a failed Docker
    listing during a rebuild
  - Example: "container listing failed, keeping previous cache"

Fatal Level:
  - Unrecoverable startup errors only; logs and exits

# Usage

Initializing the logger:

	import "github.com/cuemby/dcdc/pkg/log"

	// JSON output (production)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
	})

	// Console output (development)
	log.Init(log.Config{
		Level: log.DebugLevel,
	})

Parsing a level from a flag value:

	log.Init(log.Config{Level: log.ParseLevel(flagValue)})

Structured fields on the global logger:

	log.Logger.Info().
		Str("component", "dns").
		Str("address", "localhost:9953").
		Msg("starting DNS server")

Component child loggers:

	logger := log.WithComponent("cache")
	logger.Debug().Str("key", key).Msg("cache: checking container")

Error logging:

	log.Logger.Error().
		Err(err).
		Str("component", "cache").
		Msg("container listing failed, keeping previous cache")

# Design Notes

The global logger trades injection purity for convenience: every package logs
through the same instance, and tests that care about output can call Init
with a bytes.Buffer. Zerolog allocates nothing for suppressed levels, so
leaving Debug statements on hot paths costs little in production.

Init may be called again to reconfigure, which tests use to capture or
silence output. The zero-value Logger before Init writes nothing useful;
processes must call Init first thing in main.

# See Also

  - pkg/config for the log_level and log_json configuration fields
  - cmd/dcdc for where the logger is initialized at startup
*/
package log
