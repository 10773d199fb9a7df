package cache

import (
	"testing"
	"time"

	"github.com/cuemby/dcdc/pkg/runtime"
	"github.com/cuemby/dcdc/pkg/types"
)

func container(id, project, service, ordinal string, networks ...types.NetworkAttachment) types.ContainerInfo {
	labels := map[string]string{}
	if project != "" {
		labels[runtime.LabelProject] = project
	}
	if service != "" {
		labels[runtime.LabelService] = service
	}
	if ordinal != "" {
		labels[runtime.LabelContainerNumber] = ordinal
	}
	return types.ContainerInfo{ID: id, Labels: labels, Networks: networks}
}

// TestBuildIndexesByServiceProjectAndRoot tests composite key construction
func TestBuildIndexesByServiceProjectAndRoot(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5"}),
		container("c2", "shop", "db", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.6"}),
		container("c3", "blog", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.19.0.2"}),
	}

	records := Build(containers, "dcdc")

	if len(records) != 3 {
		t.Fatalf("Build() produced %d records, want 3", len(records))
	}

	for _, key := range []string{"web.shop.dcdc", "db.shop.dcdc", "web.blog.dcdc"} {
		if _, ok := records[key]; !ok {
			t.Errorf("Build() missing record for key %q", key)
		}
	}

	rec := records["web.shop.dcdc"]
	if rec.ServiceName != "web" || rec.ProjectName != "shop" {
		t.Errorf("Build() record identity = %s/%s, want web/shop", rec.ServiceName, rec.ProjectName)
	}
	if len(rec.IPv4Addresses) != 1 || rec.IPv4Addresses[0] != "172.18.0.5" {
		t.Errorf("Build() IPv4 = %v, want [172.18.0.5]", rec.IPv4Addresses)
	}
}

// TestBuildSkipsNonComposeContainers tests that unlabelled containers are
// excluded
func TestBuildSkipsNonComposeContainers(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "", "", "", types.NetworkAttachment{Network: "bridge", IPv4: "172.17.0.2"}),
		container("c2", "shop", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5"}),
	}

	records := Build(containers, "dcdc")

	if len(records) != 1 {
		t.Fatalf("Build() produced %d records, want 1", len(records))
	}
	if _, ok := records["web.shop.dcdc"]; !ok {
		t.Error("Build() missing the compose-managed record")
	}
}

// TestBuildMissingOptionalLabels tests degradation when service or ordinal
// labels are absent
func TestBuildMissingOptionalLabels(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "", "", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5"}),
	}

	records := Build(containers, "dcdc")

	if len(records) != 1 {
		t.Fatalf("Build() produced %d records, want 1", len(records))
	}

	rec, ok := records[".shop.dcdc"]
	if !ok {
		t.Fatalf("Build() keys = %v, want [.shop.dcdc]", keysOf(records))
	}
	if rec.ServiceName != "" {
		t.Errorf("Build() ServiceName = %q, want empty", rec.ServiceName)
	}
	if id, ok := rec.ContainerIDs[""]; !ok || id != "c1" {
		t.Errorf("Build() ContainerIDs = %v, want map[:c1]", rec.ContainerIDs)
	}
}

// TestBuildMergesReplicas tests that replicas of one service share a record
func TestBuildMergesReplicas(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1",
			types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5", IPv6: "fd00::5"}),
		container("c2", "shop", "web", "2",
			types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.6"}),
	}

	records := Build(containers, "dcdc")

	if len(records) != 1 {
		t.Fatalf("Build() produced %d records, want 1", len(records))
	}

	rec := records["web.shop.dcdc"]
	if len(rec.ContainerIDs) != 2 {
		t.Errorf("Build() ContainerIDs = %v, want 2 entries", rec.ContainerIDs)
	}
	if rec.ContainerIDs["1"] != "c1" || rec.ContainerIDs["2"] != "c2" {
		t.Errorf("Build() ContainerIDs = %v, want 1:c1 2:c2", rec.ContainerIDs)
	}

	wantV4 := []string{"172.18.0.5", "172.18.0.6"}
	if len(rec.IPv4Addresses) != len(wantV4) {
		t.Fatalf("Build() IPv4 = %v, want %v", rec.IPv4Addresses, wantV4)
	}
	for i, addr := range wantV4 {
		if rec.IPv4Addresses[i] != addr {
			t.Errorf("Build() IPv4[%d] = %s, want %s", i, rec.IPv4Addresses[i], addr)
		}
	}

	if len(rec.IPv6Addresses) != 1 || rec.IPv6Addresses[0] != "fd00::5" {
		t.Errorf("Build() IPv6 = %v, want [fd00::5]", rec.IPv6Addresses)
	}
}

// TestBuildDuplicateOrdinalLastWins tests ordinal collisions between replicas
func TestBuildDuplicateOrdinalLastWins(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5"}),
		container("c2", "shop", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.6"}),
	}

	records := Build(containers, "dcdc")

	rec := records["web.shop.dcdc"]
	if len(rec.ContainerIDs) != 1 {
		t.Fatalf("Build() ContainerIDs = %v, want 1 entry", rec.ContainerIDs)
	}
	if rec.ContainerIDs["1"] != "c2" {
		t.Errorf("Build() ContainerIDs[1] = %s, want c2", rec.ContainerIDs["1"])
	}

	// Both addresses survive even though the ordinal collided.
	if len(rec.IPv4Addresses) != 2 {
		t.Errorf("Build() IPv4 = %v, want both addresses", rec.IPv4Addresses)
	}
}

// TestBuildSkipsEmptyAddresses tests that unassigned addresses never enter a
// record
func TestBuildSkipsEmptyAddresses(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1",
			types.NetworkAttachment{Network: "none", IPv4: "", IPv6: ""},
			types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5", IPv6: ""},
		),
	}

	records := Build(containers, "dcdc")

	rec := records["web.shop.dcdc"]
	if len(rec.IPv4Addresses) != 1 {
		t.Errorf("Build() IPv4 = %v, want exactly one address", rec.IPv4Addresses)
	}
	if len(rec.IPv6Addresses) != 0 {
		t.Errorf("Build() IPv6 = %v, want none", rec.IPv6Addresses)
	}
}

// TestBuildRecordWithNoAddresses tests that a service with only unassigned
// networks still gets a record
func TestBuildRecordWithNoAddresses(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1", types.NetworkAttachment{Network: "none"}),
	}

	records := Build(containers, "dcdc")

	rec, ok := records["web.shop.dcdc"]
	if !ok {
		t.Fatal("Build() dropped record for addressless container")
	}
	if len(rec.IPv4Addresses) != 0 || len(rec.IPv6Addresses) != 0 {
		t.Errorf("Build() addresses = %v/%v, want none", rec.IPv4Addresses, rec.IPv6Addresses)
	}
}

// TestBuildMultiNetworkAddressOrder tests that addresses follow the sorted
// attachment order within a container
func TestBuildMultiNetworkAddressOrder(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1",
			types.NetworkAttachment{Network: "backend", IPv4: "172.20.0.2"},
			types.NetworkAttachment{Network: "frontend", IPv4: "172.21.0.2"},
		),
	}

	records := Build(containers, "dcdc")

	rec := records["web.shop.dcdc"]
	want := []string{"172.20.0.2", "172.21.0.2"}
	if len(rec.IPv4Addresses) != 2 || rec.IPv4Addresses[0] != want[0] || rec.IPv4Addresses[1] != want[1] {
		t.Errorf("Build() IPv4 = %v, want %v", rec.IPv4Addresses, want)
	}
}

// TestBuildTimestamps tests that all records of one build share a timestamp
func TestBuildTimestamps(t *testing.T) {
	containers := []types.ContainerInfo{
		container("c1", "shop", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.18.0.5"}),
		container("c2", "blog", "web", "1", types.NetworkAttachment{Network: "bridge", IPv4: "172.19.0.2"}),
	}

	before := time.Now()
	records := Build(containers, "dcdc")
	after := time.Now()

	var stamps []time.Time
	for _, rec := range records {
		stamps = append(stamps, rec.LastUpdated)
	}

	for i, ts := range stamps {
		if ts.Before(before) || ts.After(after) {
			t.Errorf("Build() record %d LastUpdated = %v outside build window", i, ts)
		}
	}
	if len(stamps) == 2 && !stamps[0].Equal(stamps[1]) {
		t.Errorf("Build() records carry different timestamps: %v vs %v", stamps[0], stamps[1])
	}
}

// TestBuildEmptySnapshot tests building from no containers
func TestBuildEmptySnapshot(t *testing.T) {
	records := Build(nil, "dcdc")
	if len(records) != 0 {
		t.Errorf("Build(nil) produced %d records, want 0", len(records))
	}
}

func keysOf(records map[string]*types.ServiceRecord) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	return keys
}
