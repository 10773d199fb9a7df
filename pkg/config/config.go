package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHost is the address the DNS listener binds when none is given.
	DefaultHost = "localhost"

	// DefaultPort is the DNS listener port. It sits above 1024 so the daemon
	// can run unprivileged.
	DefaultPort = 9953

	// DefaultRootDomain is the zone the daemon answers for.
	DefaultRootDomain = "dcdc"

	// DefaultStaleThreshold bounds how old a cached record may be before a
	// lookup forces a rebuild. It is also the ceiling for answer TTLs.
	DefaultStaleThreshold = 60 * time.Second

	// DefaultQueryTimeout caps a single Docker listing round-trip.
	DefaultQueryTimeout = 5 * time.Second

	// DefaultLogLevel is the logging level when none is configured.
	DefaultLogLevel = "info"
)

// Transport names accepted for the DNS listener.
const (
	TransportUDP = "udp"
	TransportTCP = "tcp"
)

// Duration wraps time.Duration so YAML values decode from strings like "90s".
// Bare numbers are taken as seconds.
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	return fmt.Errorf("invalid duration: %s", value.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds the dcdc daemon configuration. All fields are optional in the
// file; Normalize fills missing values with defaults.
type Config struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	Transport      string   `yaml:"transport"`
	RootDomain     string   `yaml:"root_domain"`
	StaleThreshold Duration `yaml:"stale_threshold"`
	QueryTimeout   Duration `yaml:"query_timeout"`
	DockerHost     string   `yaml:"docker_host"`
	MetricsAddr    string   `yaml:"metrics_addr"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		Transport:      TransportUDP,
		RootDomain:     DefaultRootDomain,
		StaleThreshold: Duration(DefaultStaleThreshold),
		QueryTimeout:   Duration(DefaultQueryTimeout),
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads a YAML configuration file over the defaults, then normalizes
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Normalize trims the root domain and fills empty fields with defaults.
// Leading and trailing dots are dropped from the root domain, so ".dcdc" and
// "dcdc" configure the same zone; interior dots stay, allowing roots like
// "docker.internal".
func (c *Config) Normalize() {
	c.RootDomain = strings.Trim(c.RootDomain, ".")
	c.Transport = strings.ToLower(c.Transport)

	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Transport == "" {
		c.Transport = TransportUDP
	}
	if c.StaleThreshold <= 0 {
		c.StaleThreshold = Duration(DefaultStaleThreshold)
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = Duration(DefaultQueryTimeout)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks for values the daemon cannot serve with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Transport != TransportUDP && c.Transport != TransportTCP {
		return fmt.Errorf("unknown transport %q (use %q or %q)", c.Transport, TransportUDP, TransportTCP)
	}
	if c.RootDomain == "" {
		return fmt.Errorf("root domain must not be empty")
	}
	return nil
}

// ListenAddr is the host:port the DNS server binds.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
