package types

import (
	"testing"
	"time"
)

// TestRecordKey tests cache key construction
func TestRecordKey(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		project    string
		rootDomain string
		want       string
	}{
		{
			name:       "typical service",
			service:    "web",
			project:    "shop",
			rootDomain: "dcdc",
			want:       "web.shop.dcdc",
		},
		{
			name:       "multi-label root domain",
			service:    "web",
			project:    "shop",
			rootDomain: "dcdc.internal",
			want:       "web.shop.dcdc.internal",
		},
		{
			name:       "empty service label",
			service:    "",
			project:    "shop",
			rootDomain: "dcdc",
			want:       ".shop.dcdc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordKey(tt.service, tt.project, tt.rootDomain); got != tt.want {
				t.Errorf("RecordKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestServiceRecordAge tests age computation
func TestServiceRecordAge(t *testing.T) {
	now := time.Now()
	rec := &ServiceRecord{LastUpdated: now.Add(-30 * time.Second)}

	if got := rec.Age(now); got != 30*time.Second {
		t.Errorf("Age() = %v, want 30s", got)
	}

	fresh := &ServiceRecord{LastUpdated: now}
	if got := fresh.Age(now); got != 0 {
		t.Errorf("Age() = %v, want 0", got)
	}
}
