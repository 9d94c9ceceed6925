package nodespec

import (
	"testing"

	"github.com/envmatch/envmatch/internal/searchspace"
)

func networkCapability() *NetworkInterfaceOptions {
	return &NetworkInterfaceOptions{
		DataPath:    searchspace.AllowOnly(DataPathSynthetic, DataPathSRIOV),
		NICCount:    searchspace.RangeCount(searchspace.Between(1, 8)),
		MaxNICCount: searchspace.ExactCount(8),
	}
}

func TestNetworkOptionsCheck(t *testing.T) {
	tests := []struct {
		name        string
		requirement *NetworkInterfaceOptions
		ok          bool
	}{
		{
			name:        "defaults pass",
			requirement: DefaultNetworkOptions(),
			ok:          true,
		},
		{
			name: "sriov only passes",
			requirement: &NetworkInterfaceOptions{
				DataPath: searchspace.AllowOnly(DataPathSRIOV),
				NICCount: searchspace.ExactCount(2),
			},
			ok: true,
		},
		{
			name: "nic count beyond capability fails",
			requirement: &NetworkInterfaceOptions{
				NICCount: searchspace.ExactCount(16),
			},
			ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.requirement.Check(networkCapability())
			if result.OK() != tt.ok {
				t.Fatalf("Check() ok = %v, want %v, reasons: %v",
					result.OK(), tt.ok, result.Reasons())
			}
		})
	}
}

func TestNetworkOptionsGenerateMin(t *testing.T) {
	requirement := DefaultNetworkOptions()
	min, err := requirement.GenerateMin(networkCapability())
	if err != nil {
		t.Fatalf("GenerateMin() error: %v", err)
	}

	// Accelerated networking wins when both sides offer it.
	if got, ok := min.DataPath.Single(); !ok || got != DataPathSRIOV {
		t.Errorf("data path = %v, want %v", min.DataPath, DataPathSRIOV)
	}
	if got, ok := min.NICCount.Exact(); !ok || got != 1 {
		t.Errorf("nic count = %v, want 1", got)
	}
	if got, ok := min.MaxNICCount.Exact(); !ok || got != 8 {
		t.Errorf("max nic count = %v, want 8", got)
	}
}

func TestNetworkOptionsGenerateMinUnsetCounts(t *testing.T) {
	requirement := &NetworkInterfaceOptions{
		DataPath: searchspace.AllowOnly(DataPathSynthetic),
	}
	capability := &NetworkInterfaceOptions{
		DataPath: searchspace.AllowOnly(DataPathSynthetic, DataPathSRIOV),
	}
	if _, err := requirement.GenerateMin(capability); err == nil {
		t.Fatalf("expected error when nic_count is unset on both sides")
	}
}

func TestNetworkOptionsIntersect(t *testing.T) {
	requirement := &NetworkInterfaceOptions{
		DataPath: searchspace.AllowOnly(DataPathSRIOV),
		NICCount: searchspace.RangeCount(searchspace.Between(2, 16)),
	}
	value, err := requirement.Intersect(networkCapability())
	if err != nil {
		t.Fatalf("Intersect() error: %v", err)
	}
	r, ok := value.NICCount.Range()
	if !ok || r.Min != 2 || r.Max != 8 {
		t.Errorf("nic count = %v, want [2,8]", value.NICCount)
	}
	if got, ok := value.DataPath.Single(); !ok || got != DataPathSRIOV {
		t.Errorf("data path = %v, want single %v", value.DataPath, DataPathSRIOV)
	}
}
