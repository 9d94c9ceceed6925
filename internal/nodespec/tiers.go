package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// DiskTier is one quantized offering step: provisioning the given size grants
// the given IOPS.
type DiskTier struct {
	IOPS   int
	SizeGB int
}

// TierTable maps a disk type to its quantized tiers, ordered by ascending
// IOPS. Min generation picks the cheapest tier whose IOPS or size falls into
// the intersected requirement/capability range. The table is an explicit
// parameter of tier resolution, not ambient state.
type TierTable map[DiskType][]DiskTier

// DefaultTierTable carries the managed-disk offerings of the reference cloud.
// Types absent from the table, such as ephemeral disks, support no data
// disks and resolve to zero.
var DefaultTierTable = TierTable{
	DiskPremiumSSD: {
		{120, 4}, {240, 64}, {500, 128}, {1100, 256}, {2300, 512},
		{5000, 1024}, {7500, 2048}, {16000, 8192}, {18000, 16384}, {20000, 32767},
	},
	DiskStandardHDD: {
		{500, 32}, {1300, 8192}, {2000, 16384},
	},
	DiskStandardSSD: {
		{500, 4}, {2000, 8192}, {4000, 16384}, {6000, 32767},
	},
}

// ResolveDataDiskTier picks the cheapest tier of the chosen disk type that
// satisfies the intersected IOPS or size constraints of requirement and
// capability. Preference order follows the declared constraints: IOPS first,
// then size, then the capability's size floor.
func ResolveDataDiskTier(table TierTable, chosen DiskType, requirement, capability *DiskOptions) (DiskTier, error) {
	tiers, ok := table[chosen]
	if !ok {
		// No data disk support for this type, it still needs a value.
		return DiskTier{}, nil
	}

	switch {
	case requirement.DataDiskIOPS.IsSet():
		reqIOPS, err := searchspace.CountSpaceToRange(requirement.DataDiskIOPS)
		if err != nil {
			return DiskTier{}, err
		}
		capIOPS, err := searchspace.CountSpaceToRange(capability.DataDiskIOPS)
		if err != nil {
			return DiskTier{}, err
		}
		return cheapestTier(tiers, chosen, maxInt(reqIOPS.Min, capIOPS.Min), minInt(reqIOPS.Max, capIOPS.Max), func(t DiskTier) int {
			return t.IOPS
		})
	case requirement.DataDiskSizeGB.IsSet():
		reqSize, err := searchspace.CountSpaceToRange(requirement.DataDiskSizeGB)
		if err != nil {
			return DiskTier{}, err
		}
		capSize, err := searchspace.CountSpaceToRange(capability.DataDiskSizeGB)
		if err != nil {
			return DiskTier{}, err
		}
		return cheapestTier(tiers, chosen, maxInt(reqSize.Min, capSize.Min), minInt(reqSize.Max, capSize.Max), func(t DiskTier) int {
			return t.SizeGB
		})
	default:
		capSize, err := searchspace.CountSpaceToRange(capability.DataDiskSizeGB)
		if err != nil {
			return DiskTier{}, err
		}
		return cheapestTier(tiers, chosen, capSize.Min, capSize.Max, func(t DiskTier) int {
			return t.IOPS
		})
	}
}

// cheapestTier returns the lowest-IOPS tier whose keyed value lies in
// [min, max].
func cheapestTier(tiers []DiskTier, chosen DiskType, min, max int, key func(DiskTier) int) (DiskTier, error) {
	best := DiskTier{IOPS: -1}
	for _, tier := range tiers {
		v := key(tier)
		if v < min || v > max {
			continue
		}
		if best.IOPS < 0 || tier.IOPS < best.IOPS {
			best = tier
		}
	}
	if best.IOPS < 0 {
		return DiskTier{}, &searchspace.NotSupportedError{
			Operation: "get min value",
			Reasons: []string{fmt.Sprintf(
				"no %s tier falls within [%d, %d]", chosen, min, max)},
		}
	}
	return best, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
