package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"

	"github.com/cuemby/dcdc/pkg/types"
)

// Compose label keys the Docker daemon stamps on containers it created for a
// compose project.
const (
	// LabelProject marks a container as belonging to a Compose project.
	// Containers without it are not compose-managed and are ignored.
	LabelProject = "com.docker.compose.project"

	// LabelService names the Compose service the container was created from.
	LabelService = "com.docker.compose.service"

	// LabelContainerNumber is the replica ordinal within the service.
	LabelContainerNumber = "com.docker.compose.container-number"
)

// Source lists the containers currently visible to a container runtime.
// Implementations return a point-in-time snapshot; callers own caching.
type Source interface {
	ListContainers(ctx context.Context) ([]types.ContainerInfo, error)
}

// DockerSource implements Source against the Docker Engine API.
type DockerSource struct {
	client *client.Client
}

// NewDockerSource connects to the Docker daemon. An empty host uses the
// environment (DOCKER_HOST et al.) or the default socket.
func NewDockerSource(host string) (*DockerSource, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &DockerSource{client: cli}, nil
}

// Close closes the connection to the Docker daemon.
func (s *DockerSource) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Ping verifies connectivity with the Docker daemon.
func (s *DockerSource) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	return nil
}

// ListContainers returns the running containers with their labels and
// per-network addresses.
func (s *DockerSource) ListContainers(ctx context.Context) ([]types.ContainerInfo, error) {
	containers, err := s.client.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	infos := make([]types.ContainerInfo, 0, len(containers))
	for _, ctr := range containers {
		info := types.ContainerInfo{
			ID:     ctr.ID,
			Labels: ctr.Labels,
		}
		if ctr.NetworkSettings != nil {
			info.Networks = attachments(ctr.NetworkSettings.Networks)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// attachments flattens a container's per-network endpoint map into a slice
// sorted by network name. Docker hands the endpoints back as a map; sorting
// keeps address order stable across listings of the same daemon state.
func attachments(networks map[string]*network.EndpointSettings) []types.NetworkAttachment {
	if len(networks) == 0 {
		return nil
	}

	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]types.NetworkAttachment, 0, len(names))
	for _, name := range names {
		ep := networks[name]
		if ep == nil {
			continue
		}
		out = append(out, types.NetworkAttachment{
			Network: name,
			IPv4:    ep.IPAddress,
			IPv6:    ep.GlobalIPv6Address,
		})
	}

	return out
}
