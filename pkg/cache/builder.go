package cache

import (
	"time"

	"github.com/cuemby/dcdc/pkg/log"
	"github.com/cuemby/dcdc/pkg/runtime"
	"github.com/cuemby/dcdc/pkg/types"
)

// Build indexes a container snapshot into service records keyed by
// <service>.<project>.<rootDomain>. Containers without the compose project
// label are skipped; a missing service or container-number label degrades to
// the empty string rather than excluding the container. Replicas of the same
// service merge into one record, and only assigned addresses are kept.
func Build(containers []types.ContainerInfo, rootDomain string) map[string]*types.ServiceRecord {
	logger := log.WithComponent("cache")

	records := make(map[string]*types.ServiceRecord)
	now := time.Now()

	for _, ctr := range containers {
		project, ok := ctr.Labels[runtime.LabelProject]
		if !ok {
			continue
		}
		service := ctr.Labels[runtime.LabelService]
		ordinal := ctr.Labels[runtime.LabelContainerNumber]

		key := types.RecordKey(service, project, rootDomain)
		logger.Debug().Str("container", ctr.ID).Str("key", key).Msg("cache: checking container")

		rec, ok := records[key]
		if !ok {
			rec = &types.ServiceRecord{
				ContainerIDs: make(map[string]string),
				ServiceName:  service,
				ProjectName:  project,
				LastUpdated:  now,
			}
			records[key] = rec
		}
		rec.ContainerIDs[ordinal] = ctr.ID

		for _, att := range ctr.Networks {
			if att.IPv4 != "" {
				rec.IPv4Addresses = append(rec.IPv4Addresses, att.IPv4)
			}
			if att.IPv6 != "" {
				rec.IPv6Addresses = append(rec.IPv6Addresses, att.IPv6)
			}
		}
	}

	return records
}
