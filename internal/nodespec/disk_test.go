package nodespec

import (
	"errors"
	"testing"

	"github.com/envmatch/envmatch/internal/searchspace"
)

func diskCapability() *DiskOptions {
	return &DiskOptions{
		OSDiskType:       searchspace.AllowOnly(DiskStandardHDD, DiskStandardSSD, DiskPremiumSSD),
		DataDiskType:     searchspace.AllowOnly(DiskStandardHDD, DiskStandardSSD, DiskPremiumSSD),
		DataDiskCount:    searchspace.RangeCount(searchspace.AtLeast(0)),
		MaxDataDiskCount: searchspace.ExactCount(16),
		DataDiskIOPS:     searchspace.RangeCount(searchspace.AtLeast(0)),
		DataDiskSizeGB:   searchspace.RangeCount(searchspace.AtLeast(0)),
		ControllerType:   searchspace.AllowOnly(ControllerSCSI, ControllerNVMe),
	}
}

func TestDiskOptionsCheck(t *testing.T) {
	tests := []struct {
		name        string
		requirement *DiskOptions
		capability  *DiskOptions
		ok          bool
	}{
		{
			name:        "default requirement matches broad capability",
			requirement: DefaultDiskOptions(),
			capability:  diskCapability(),
			ok:          true,
		},
		{
			name:        "nil capability fails",
			requirement: DefaultDiskOptions(),
			capability:  nil,
			ok:          false,
		},
		{
			name: "unsupported data disk type fails",
			requirement: &DiskOptions{
				DataDiskType: searchspace.AllowOnly(DiskUltraSSD),
			},
			capability: diskCapability(),
			ok:         false,
		},
		{
			name: "data disk count above ceiling fails",
			requirement: &DiskOptions{
				DataDiskCount: searchspace.ExactCount(4),
			},
			capability: &DiskOptions{
				DataDiskCount: searchspace.RangeCount(
					searchspace.Between(0, 2)),
			},
			ok: false,
		},
		{
			name: "nvme controller only",
			requirement: &DiskOptions{
				ControllerType: searchspace.AllowOnly(ControllerNVMe),
			},
			capability: diskCapability(),
			ok:         true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.requirement.Check(tt.capability)
			if result.OK() != tt.ok {
				t.Fatalf("Check() ok = %v, want %v, reasons: %v",
					result.OK(), tt.ok, result.Reasons())
			}
		})
	}
}

func TestDiskOptionsGenerateMin(t *testing.T) {
	requirement := &DiskOptions{
		DataDiskType: searchspace.AllowOnly(
			DiskPremiumSSD, DiskStandardSSD),
		DataDiskCount:  searchspace.RangeCount(searchspace.AtLeast(2)),
		ControllerType: searchspace.AllowOnly(ControllerSCSI, ControllerNVMe),
	}
	min, err := requirement.GenerateMin(diskCapability())
	if err != nil {
		t.Fatalf("GenerateMin() error: %v", err)
	}

	// Cheapest acceptable type wins: standard SSD beats premium.
	if got, ok := min.DataDiskType.Single(); !ok || got != DiskStandardSSD {
		t.Errorf("data disk type = %v, want %v", got, DiskStandardSSD)
	}
	if got, ok := min.DataDiskCount.Exact(); !ok || got != 2 {
		t.Errorf("data disk count = %v, want 2", got)
	}
	if got, ok := min.ControllerType.Single(); !ok || got != ControllerSCSI {
		t.Errorf("controller = %v, want %v", got, ControllerSCSI)
	}
	if min.DataDiskThroughput.IsSet() {
		t.Errorf("throughput should stay unset when unset on both sides")
	}
}

func TestDiskOptionsGenerateMinRejected(t *testing.T) {
	requirement := &DiskOptions{
		DataDiskType: searchspace.AllowOnly(DiskUltraSSD),
	}
	_, err := requirement.GenerateMin(diskCapability())
	var notSupported *searchspace.NotSupportedError
	if !errors.As(err, &notSupported) {
		t.Fatalf("GenerateMin() error = %v, want NotSupportedError", err)
	}
}

func TestDiskOptionsGenerateMinCaching(t *testing.T) {
	requirement := &DiskOptions{DataDiskCaching: CachingReadOnly}
	capability := diskCapability()
	capability.DataDiskCaching = CachingNone

	min, err := requirement.GenerateMin(capability)
	if err != nil {
		t.Fatalf("GenerateMin() error: %v", err)
	}
	if min.DataDiskCaching != CachingReadOnly {
		t.Errorf("caching = %v, requirement should win", min.DataDiskCaching)
	}
}

func TestDiskOptionsIntersect(t *testing.T) {
	requirement := &DiskOptions{
		DataDiskType:  searchspace.AllowOnly(DiskStandardSSD, DiskPremiumSSD),
		DataDiskCount: searchspace.RangeCount(searchspace.Between(2, 8)),
	}
	capability := &DiskOptions{
		DataDiskType:  searchspace.AllowOnly(DiskStandardHDD, DiskStandardSSD),
		DataDiskCount: searchspace.RangeCount(searchspace.Between(0, 4)),
	}
	value, err := requirement.Intersect(capability)
	if err != nil {
		t.Fatalf("Intersect() error: %v", err)
	}
	if got, ok := value.DataDiskType.Single(); !ok || got != DiskStandardSSD {
		t.Errorf("intersected type = %v, want single %v", got, DiskStandardSSD)
	}
	r, ok := value.DataDiskCount.Range()
	if !ok || r.Min != 2 || r.Max != 4 {
		t.Errorf("intersected count = %v, want [2,4]", value.DataDiskCount)
	}
}

func TestResolveDataDiskTier(t *testing.T) {
	capability := diskCapability()
	tests := []struct {
		name        string
		requirement *DiskOptions
		chosen      DiskType
		want        DiskTier
	}{
		{
			name: "iops constraint picks matching tier",
			requirement: &DiskOptions{
				DataDiskIOPS: searchspace.RangeCount(searchspace.AtLeast(600)),
			},
			chosen: DiskPremiumSSD,
			want:   DiskTier{1100, 256},
		},
		{
			name: "size constraint picks cheapest covering tier",
			requirement: &DiskOptions{
				DataDiskSizeGB: searchspace.RangeCount(searchspace.AtLeast(64)),
			},
			chosen: DiskPremiumSSD,
			want:   DiskTier{240, 64},
		},
		{
			name:        "no constraint falls back to smallest tier",
			requirement: &DiskOptions{},
			chosen:      DiskStandardHDD,
			want:        DiskTier{500, 32},
		},
		{
			name:        "type without data disks resolves to zero",
			requirement: &DiskOptions{},
			chosen:      DiskEphemeral,
			want:        DiskTier{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDataDiskTier(
				DefaultTierTable, tt.chosen, tt.requirement, capability)
			if err != nil {
				t.Fatalf("ResolveDataDiskTier() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("tier = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveDataDiskTierUnreachable(t *testing.T) {
	requirement := &DiskOptions{
		DataDiskIOPS: searchspace.RangeCount(searchspace.AtLeast(9000)),
	}
	_, err := ResolveDataDiskTier(
		DefaultTierTable, DiskStandardHDD, requirement, diskCapability())
	if err == nil {
		t.Fatalf("expected error for iops beyond the tier table")
	}
}
