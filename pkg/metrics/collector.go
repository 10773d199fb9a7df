package metrics

import (
	"context"
	"time"
)

// Pinger reports whether the container runtime is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Collector periodically probes the container runtime and feeds the
// result into the health checker.
type Collector struct {
	source Pinger
	stopCh chan struct{}
}

// NewCollector creates a new health collector for the given runtime source.
func NewCollector(source Pinger) *Collector {
	return &Collector{
		source: source,
		stopCh: make(chan struct{}),
	}
}

// Start begins probing the runtime
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.source.Ping(ctx); err != nil {
		UpdateComponent("docker", false, err.Error())
		return
	}
	UpdateComponent("docker", true, "docker daemon reachable")
}
