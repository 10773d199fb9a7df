/*
Package runtime provides Docker Engine integration for container discovery.

The runtime package wraps the Docker client API behind a small Source
interface that returns point-in-time snapshots of the containers visible to
the daemon, together with their Compose labels and per-network addresses.
It performs no caching and no filtering beyond shape conversion; deciding
which containers matter is the cache builder's job.

# Architecture

dcdc reads container state straight from the Docker daemon on demand:

	┌────────────────── DOCKER RUNTIME ───────────────────┐
	│                                                       │
	│  ┌──────────────────────────────────────────┐       │
	│  │           DockerSource Client             │       │
	│  │  - Host: DOCKER_HOST or default socket    │       │
	│  │  - API version: negotiated with daemon    │       │
	│  └──────────────────┬───────────────────────┘       │
	│                     │                                 │
	│  ┌──────────────────▼───────────────────────┐       │
	│  │           ListContainers                  │       │
	│  │  - One ContainerList call per snapshot    │       │
	│  │  - Running containers only (no -a)        │       │
	│  │  - Labels passed through untouched        │       │
	│  └──────────────────┬───────────────────────┘       │
	│                     │                                 │
	│  ┌──────────────────▼───────────────────────┐       │
	│  │         Network Flattening                 │       │
	│  │  - Endpoint map → sorted attachment slice │       │
	│  │  - IPv4 from IPAddress                    │       │
	│  │  - IPv6 from GlobalIPv6Address            │       │
	│  └────────────────────────────────────────────┘      │
	│                                                       │
	│  ┌──────────────────────────────────────────┐       │
	│  │             Docker Daemon                 │       │
	│  │  - Source of truth for container state    │       │
	│  │  - Assigns bridge-network addresses       │       │
	│  └────────────────────────────────────────────┘      │
	└───────────────────────────────────────────────────┘

# Compose Labels

Docker Compose stamps every container it creates with labels that identify
where it came from. dcdc keys its cache off three of them:

  - com.docker.compose.project: the project (directory or -p flag)
  - com.docker.compose.service: the service name from the compose file
  - com.docker.compose.container-number: the replica ordinal (scale index)

The label constants are exported so the cache builder and tests reference
the same strings. Containers without the project label are not
compose-managed and never enter the cache.

# Usage

Creating a Source:

	source, err := runtime.NewDockerSource("")
	if err != nil {
		log.Fatal(err)
	}
	defer source.Close()

	// Explicit daemon address
	source, err := runtime.NewDockerSource("unix:///var/run/docker.sock")

Listing containers:

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	containers, err := source.ListContainers(ctx)
	if err != nil {
		return err
	}

	for _, ctr := range containers {
		project := ctr.Labels[runtime.LabelProject]
		service := ctr.Labels[runtime.LabelService]
		for _, att := range ctr.Networks {
			fmt.Printf("%s/%s on %s: %s\n", project, service, att.Network, att.IPv4)
		}
	}

Checking daemon health:

	if err := source.Ping(ctx); err != nil {
		metrics.UpdateComponent("docker", false, err.Error())
	}

# Integration Points

This package integrates with:

  - pkg/types: ContainerInfo and NetworkAttachment definitions
  - pkg/cache: consumes snapshots to build the service record map
  - pkg/metrics: Ping feeds the docker health component
  - Docker Engine API: container listing and daemon ping

# Error Handling

Errors from the Docker client are wrapped with operation context and
returned as-is to the caller. A failed listing means the caller keeps
whatever state it already has; this package never retries on its own.
Context cancellation and deadline expiry propagate from ListContainers so
callers control how long a snapshot may take.

# See Also

  - pkg/cache for how snapshots become DNS answers
  - pkg/types for the snapshot data model
  - Docker Engine API: https://docs.docker.com/engine/api/
*/
package runtime
