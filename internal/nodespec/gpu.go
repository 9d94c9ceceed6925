package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// GpuSetting marks a node as requiring or offering GPU passthrough. The GPU
// count itself lives on NodeSpec so it participates in cost ordering.
type GpuSetting struct{}

func (g *GpuSetting) Kind() string { return KindGpu }

func (g *GpuSetting) String() string { return g.Kind() }

func (g *GpuSetting) Check(capability FeatureSetting) *searchspace.Result {
	return checkKind(g, capability)
}

func (g *GpuSetting) GenerateMin(capability FeatureSetting) (FeatureSetting, error) {
	if err := validateFeature(g, capability); err != nil {
		return nil, err
	}
	return &GpuSetting{}, nil
}

// NvmeSetting constrains the number of NVMe disks exposed to the guest.
type NvmeSetting struct {
	DiskCount searchspace.CountSpace
}

func (n *NvmeSetting) Kind() string { return KindNvme }

func (n *NvmeSetting) String() string {
	return fmt.Sprintf("%s/disk_count:%s", n.Kind(), n.DiskCount)
}

func (n *NvmeSetting) Check(capability FeatureSetting) *searchspace.Result {
	result := checkKind(n, capability)
	if !result.OK() {
		return result
	}
	other, ok := capability.(*NvmeSetting)
	if !ok {
		result.AddReason(fmt.Sprintf(
			"settings are different, requirement: %s, capability: %T", n.Kind(), capability))
		return result
	}
	result.Merge(searchspace.CheckCountSpace(n.DiskCount, other.DiskCount), "disk_count")
	return result
}

func (n *NvmeSetting) GenerateMin(capability FeatureSetting) (FeatureSetting, error) {
	if err := validateFeature(n, capability); err != nil {
		return nil, err
	}
	other := capability.(*NvmeSetting)

	count, err := minCount(n.DiskCount, other.DiskCount)
	if err != nil {
		return nil, err
	}
	return &NvmeSetting{DiskCount: count}, nil
}
