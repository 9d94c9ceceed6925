package config

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/nodespec"
	"github.com/envmatch/envmatch/internal/searchspace"
)

// Requirements converts a validated document into node requirements. Node
// groups without a node count default to a single node.
func (d *Document) Requirements() ([]*nodespec.NodeSpec, error) {
	specs := make([]*nodespec.NodeSpec, 0, len(d.Nodes))
	for i, node := range d.Nodes {
		spec, err := node.Spec()
		if err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Spec converts one node requirement into its search-space form.
func (n NodeRequirement) Spec() (*nodespec.NodeSpec, error) {
	spec := &nodespec.NodeSpec{
		Name:      n.Name,
		NodeCount: n.NodeCount.Space(),
		CoreCount: n.CoreCount.Space(),
		MemoryMB:  n.MemoryMB.Space(),
		GPUCount:  n.GPUCount.Space(),
	}
	if !spec.NodeCount.IsSet() {
		spec.NodeCount = searchspace.ExactCount(1)
	}

	if n.Disk != nil {
		spec.Disk = n.Disk.options()
	}
	if n.Network != nil {
		spec.Network = n.Network.options()
	}

	if len(n.Features) > 0 {
		spec.Features = nodespec.RequireFeatures()
		for _, feature := range n.Features {
			setting, err := feature.setting()
			if err != nil {
				return nil, err
			}
			spec.Features.Add(setting)
		}
	}
	if len(n.ExcludedFeatures) > 0 {
		spec.ExcludedFeatures = nodespec.ExcludeFeatures()
		for _, feature := range n.ExcludedFeatures {
			setting, err := feature.setting()
			if err != nil {
				return nil, err
			}
			spec.ExcludedFeatures.Add(setting)
		}
	}
	return spec, nil
}

func (d *DiskRequirement) options() *nodespec.DiskOptions {
	return &nodespec.DiskOptions{
		OSDiskType:         SetAs[nodespec.DiskType](d.OSDiskType),
		OSDiskSizeGB:       d.OSDiskSizeGB.Space(),
		DataDiskType:       SetAs[nodespec.DiskType](d.DataDiskType),
		DataDiskCount:      d.DataDiskCount.Space(),
		DataDiskCaching:    nodespec.DiskCachingType(d.DataDiskCaching),
		DataDiskIOPS:       d.DataDiskIOPS.Space(),
		DataDiskThroughput: d.DataDiskThroughput.Space(),
		DataDiskSizeGB:     d.DataDiskSizeGB.Space(),
		MaxDataDiskCount:   d.MaxDataDiskCount.Space(),
		ControllerType:     SetAs[nodespec.DiskControllerType](d.ControllerType),
	}
}

func (n *NetworkRequirement) options() *nodespec.NetworkInterfaceOptions {
	return &nodespec.NetworkInterfaceOptions{
		DataPath:    SetAs[nodespec.NetworkDataPath](n.DataPath),
		NICCount:    n.NICCount.Space(),
		MaxNICCount: n.MaxNICCount.Space(),
	}
}

func (f FeatureRequirement) setting() (nodespec.FeatureSetting, error) {
	switch f.Type {
	case "gpu":
		return &nodespec.GpuSetting{}, nil
	case "nvme":
		return &nodespec.NvmeSetting{DiskCount: f.DiskCount.Space()}, nil
	case "availability":
		setting := &nodespec.AvailabilitySetting{
			Types: SetAs[nodespec.AvailabilityType](f.AvailabilityTypes),
		}
		if setting.Types == nil {
			setting.Types = nodespec.DefaultAvailability().Types
		}
		if len(f.Zones) > 0 {
			setting.Zones = searchspace.AllowOnly(f.Zones...)
		}
		return setting, nil
	case "security_profile":
		setting := &nodespec.SecurityProfileSetting{
			Profiles: SetAs[nodespec.SecurityProfileType](f.Profiles),
		}
		if setting.Profiles == nil {
			setting.Profiles = searchspace.AllowOnly(nodespec.SecurityProfilePriority...)
		}
		if f.EncryptDisk != nil {
			setting.EncryptDisk = searchspace.AllowOnly(*f.EncryptDisk)
		} else {
			setting.EncryptDisk = searchspace.AllowOnly(false, true)
		}
		return setting, nil
	default:
		return nil, fmt.Errorf("unknown feature type %q", f.Type)
	}
}
