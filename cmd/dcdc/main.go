package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/dcdc/pkg/cache"
	"github.com/cuemby/dcdc/pkg/config"
	"github.com/cuemby/dcdc/pkg/dns"
	"github.com/cuemby/dcdc/pkg/log"
	"github.com/cuemby/dcdc/pkg/metrics"
	"github.com/cuemby/dcdc/pkg/network"
	"github.com/cuemby/dcdc/pkg/runtime"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dcdc",
	Short: "dcdc - DNS for your Docker Compose containers",
	Long: `dcdc (Docker Container Domain Connector) is a DNS server that maps
Docker Compose containers to their currently running bridge network
addresses.

Queries take the form <service>.<project>.<root domain>, where service
and project are the Compose service and project names. Answers come from
a cache of container state that refreshes itself from the Docker daemon
as queries arrive; container state is never polled in the background.`,
	Version: Version,
	RunE:    run,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"dcdc version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := rootCmd.Flags()
	flags.String("config", "", "Path to YAML config file")
	flags.String("host", config.DefaultHost, "Host (IP) to bind to. Use --ips to see available")
	flags.Int("port", config.DefaultPort, "Port to bind to")
	flags.Bool("tcp", false, "Use TCP for transport")
	flags.Bool("udp", false, "Use UDP for transport (default)")
	flags.String("root-domain", config.DefaultRootDomain,
		"Root domain for queries (e.g. <service>.<project>.<root>). Does not have to be a TLD")
	flags.Duration("stale-threshold", config.DefaultStaleThreshold,
		"Age at which cached records trigger a refresh")
	flags.Duration("query-timeout", config.DefaultQueryTimeout,
		"Timeout for one Docker container listing")
	flags.String("docker-host", "", "Docker daemon address (defaults to the environment)")
	flags.String("metrics-addr", "", "Metrics and health listen address, empty disables the endpoint")
	flags.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.Bool("log-json", false, "Emit JSON logs instead of console output")
	flags.Bool("ips", false, "Print available IPs and exit")

	rootCmd.MarkFlagsMutuallyExclusive("tcp", "udp")
}

func run(cmd *cobra.Command, args []string) error {
	if ips, _ := cmd.Flags().GetBool("ips"); ips {
		addrs, err := network.AvailableIPv4s()
		if err != nil {
			return fmt.Errorf("failed to list host addresses: %v", err)
		}
		fmt.Println(network.FormatList(addrs))
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:      log.ParseLevel(cfg.LogLevel),
		JSONOutput: cfg.LogJSON,
	})

	logger := log.WithComponent("main")
	logger.Info().
		Str("version", Version).
		Str("listen", cfg.ListenAddr()).
		Str("transport", cfg.Transport).
		Str("root_domain", cfg.RootDomain).
		Msg("starting dcdc")

	metrics.SetVersion(Version)

	source, err := runtime.NewDockerSource(cfg.DockerHost)
	if err != nil {
		return fmt.Errorf("failed to create docker client: %v", err)
	}
	defer source.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout.Duration())
	err = source.Ping(pingCtx)
	cancel()
	if err != nil {
		// Not fatal: the cache tolerates a source that fails, so the
		// daemon can come up before Docker does.
		logger.Warn().Err(err).Msg("docker daemon not reachable yet")
		metrics.RegisterComponent("docker", false, err.Error())
	} else {
		metrics.RegisterComponent("docker", true, "connected")
	}

	collector := metrics.NewCollector(source)
	collector.Start()
	defer collector.Stop()

	store := cache.NewStore(source, cache.StoreConfig{
		RootDomain:     cfg.RootDomain,
		StaleThreshold: cfg.StaleThreshold.Duration(),
		QueryTimeout:   cfg.QueryTimeout.Duration(),
	})

	server := dns.NewServer(store, &dns.Config{
		ListenAddr: cfg.ListenAddr(),
		Net:        cfg.Transport,
		RootDomain: cfg.RootDomain,
	})

	metrics.RegisterComponent("dns", false, "not started")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start DNS server: %v", err)
	}

	var metricsServer *metrics.Server
	metricsErrCh := make(chan error, 1)
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr)
		go func() {
			if err := metricsServer.Start(); err != nil {
				metricsErrCh <- err
			}
		}()
	}

	logger.Info().Msg("dcdc is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-metricsErrCh:
		logger.Error().Err(err).Msg("metrics server failed")
	}

	if err := server.Stop(); err != nil {
		logger.Error().Err(err).Msg("failed to stop DNS server")
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to stop metrics server")
		}
		cancel()
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

// loadConfig merges defaults, the optional config file, and flag overrides.
// Flags win over the file; the file wins over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if tcp, _ := flags.GetBool("tcp"); tcp {
		cfg.Transport = config.TransportTCP
	}
	if udp, _ := flags.GetBool("udp"); udp {
		cfg.Transport = config.TransportUDP
	}
	if flags.Changed("root-domain") {
		cfg.RootDomain, _ = flags.GetString("root-domain")
	}
	if flags.Changed("stale-threshold") {
		d, _ := flags.GetDuration("stale-threshold")
		cfg.StaleThreshold = config.Duration(d)
	}
	if flags.Changed("query-timeout") {
		d, _ := flags.GetDuration("query-timeout")
		cfg.QueryTimeout = config.Duration(d)
	}
	if flags.Changed("docker-host") {
		cfg.DockerHost, _ = flags.GetString("docker-host")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
