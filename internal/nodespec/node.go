package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// NodeSpec describes one group of identical nodes. On the requirement side it
// is what a scenario demands; on the capability side it is what a SKU offers.
// Counted fields follow requirement/capability semantics: smaller requirement
// counts are satisfied by larger capabilities.
type NodeSpec struct {
	Name             string
	NodeCount        searchspace.CountSpace
	CoreCount        searchspace.CountSpace
	MemoryMB         searchspace.CountSpace
	GPUCount         searchspace.CountSpace
	Disk             *DiskOptions
	Network          *NetworkInterfaceOptions
	Features         *FeatureSet
	ExcludedFeatures *FeatureSet
}

// DefaultNodeSpec returns the widest requirement: a single node with at least
// one core and 512 MiB of memory.
func DefaultNodeSpec() *NodeSpec {
	return &NodeSpec{
		NodeCount: searchspace.ExactCount(1),
		CoreCount: searchspace.RangeCount(searchspace.AtLeast(1)),
		MemoryMB:  searchspace.RangeCount(searchspace.AtLeast(512)),
		Disk:      DefaultDiskOptions(),
		Network:   DefaultNetworkOptions(),
	}
}

func (n *NodeSpec) String() string {
	return fmt.Sprintf("%s/count:%s,core:%s,mem:%s,gpu:%s",
		n.Name, n.NodeCount, n.CoreCount, n.MemoryMB, n.GPUCount)
}

// Check reports whether the capability can host this requirement. Failure
// reasons are qualified with the field that rejected.
func (n *NodeSpec) Check(capability *NodeSpec) *searchspace.Result {
	result := searchspace.NewResult()
	if capability == nil {
		result.AddReason("capability shouldn't be None")
		return result
	}
	if !capability.NodeCount.IsSet() || !capability.CoreCount.IsSet() ||
		!capability.MemoryMB.IsSet() {
		result.AddReason(
			"node_count, core_count, memory_mb shouldn't be None or zero")
		return result
	}

	// A capability provisioned for more nodes can host a smaller group.
	reqNodes, reqExact := n.NodeCount.Exact()
	capNodes, capExact := capability.NodeCount.Exact()
	if reqExact && capExact {
		if reqNodes > capNodes {
			result.AddReason(fmt.Sprintf(
				"capability node count %d is less than requirement %d",
				capNodes, reqNodes))
		}
	} else {
		result.Merge(searchspace.CheckCountSpace(n.NodeCount, capability.NodeCount), "node_count")
	}

	result.Merge(searchspace.CheckCountSpace(n.CoreCount, capability.CoreCount), "core_count")
	result.Merge(searchspace.CheckCountSpace(n.MemoryMB, capability.MemoryMB), "memory_mb")
	if n.GPUCount.IsSet() || capability.GPUCount.IsSet() {
		result.Merge(searchspace.CheckCountSpace(n.GPUCount, capability.GPUCount), "gpu_count")
	}
	if n.Disk != nil {
		result.Merge(n.Disk.Check(capability.Disk), "disk")
	}
	if n.Network != nil {
		result.Merge(n.Network.Check(capability.Network), "network_interface")
	}
	result.Merge(n.checkFeatures(capability), "features")
	return result
}

// checkFeatures matches required settings against capability settings of the
// same kind and rejects capabilities carrying an excluded kind.
func (n *NodeSpec) checkFeatures(capability *NodeSpec) *searchspace.Result {
	result := searchspace.NewResult()
	for _, setting := range n.Features.Settings() {
		other, ok := capability.Features.Get(setting.Kind())
		if !ok {
			result.AddReason(fmt.Sprintf(
				"capability has no feature %s", setting.Kind()))
			continue
		}
		result.Merge(setting.Check(other), setting.Kind())
	}
	for _, kind := range n.ExcludedFeatures.Kinds() {
		if _, ok := capability.Features.Get(kind); ok {
			result.AddReason(fmt.Sprintf(
				"capability has excluded feature %s", kind))
		}
	}
	return result
}

// GenerateMin collapses requirement and capability into the cheapest node
// configuration that satisfies both. The capability must set node, core and
// memory counts.
func (n *NodeSpec) GenerateMin(capability *NodeSpec) (*NodeSpec, error) {
	if check := n.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get min value", Reasons: check.Reasons(),
		}
	}

	value := &NodeSpec{Name: capability.Name}
	var err error

	reqNodes, reqExact := n.NodeCount.Exact()
	_, capExact := capability.NodeCount.Exact()
	if reqExact && capExact {
		// Provision exactly as many nodes as the requirement asks for.
		value.NodeCount = searchspace.ExactCount(reqNodes)
	} else {
		if !n.NodeCount.IsSet() && !capability.NodeCount.IsSet() {
			return nil, fmt.Errorf(
				"node_count cannot be zero on both requirement and capability")
		}
		if value.NodeCount, err = minCount(n.NodeCount, capability.NodeCount); err != nil {
			return nil, err
		}
	}

	if !n.CoreCount.IsSet() && !capability.CoreCount.IsSet() {
		return nil, fmt.Errorf(
			"core_count cannot be zero on both requirement and capability")
	}
	if value.CoreCount, err = minCount(n.CoreCount, capability.CoreCount); err != nil {
		return nil, err
	}
	if !n.MemoryMB.IsSet() && !capability.MemoryMB.IsSet() {
		return nil, fmt.Errorf(
			"memory_mb cannot be zero on both requirement and capability")
	}
	if value.MemoryMB, err = minCount(n.MemoryMB, capability.MemoryMB); err != nil {
		return nil, err
	}
	if n.GPUCount.IsSet() || capability.GPUCount.IsSet() {
		if value.GPUCount, err = minCount(n.GPUCount, capability.GPUCount); err != nil {
			return nil, err
		}
	} else {
		value.GPUCount = searchspace.ExactCount(0)
	}

	if n.Disk != nil {
		if value.Disk, err = n.Disk.GenerateMin(capability.Disk); err != nil {
			return nil, err
		}
	} else {
		value.Disk = capability.Disk
	}
	if n.Network != nil {
		if value.Network, err = n.Network.GenerateMin(capability.Network); err != nil {
			return nil, err
		}
	} else {
		value.Network = capability.Network
	}

	if value.Features, err = n.minFeatures(capability); err != nil {
		return nil, err
	}
	return value, nil
}

// minFeatures walks the capability's settings: kinds also constrained by the
// requirement get its minimal form, the rest carry over unchanged.
func (n *NodeSpec) minFeatures(capability *NodeSpec) (*FeatureSet, error) {
	if capability.Features.Len() == 0 {
		return nil, nil
	}
	value := RequireFeatures()
	for _, setting := range capability.Features.Settings() {
		required, ok := n.Features.Get(setting.Kind())
		if !ok {
			value.Add(setting)
			continue
		}
		min, err := required.GenerateMin(setting)
		if err != nil {
			return nil, err
		}
		value.Add(min)
	}
	return value, nil
}

// Intersect narrows both specs to their common region, keeping ranges as
// ranges instead of pinning single values.
func (n *NodeSpec) Intersect(capability *NodeSpec) (*NodeSpec, error) {
	if check := n.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get intersect", Reasons: check.Reasons(),
		}
	}

	value := &NodeSpec{Name: capability.Name}
	var err error
	if value.NodeCount, err = intersectCount(n.NodeCount, capability.NodeCount); err != nil {
		return nil, err
	}
	if value.CoreCount, err = intersectCount(n.CoreCount, capability.CoreCount); err != nil {
		return nil, err
	}
	if value.MemoryMB, err = intersectCount(n.MemoryMB, capability.MemoryMB); err != nil {
		return nil, err
	}
	if value.GPUCount, err = intersectCount(n.GPUCount, capability.GPUCount); err != nil {
		return nil, err
	}
	if n.Disk != nil && capability.Disk != nil {
		if value.Disk, err = n.Disk.Intersect(capability.Disk); err != nil {
			return nil, err
		}
	}
	if n.Network != nil && capability.Network != nil {
		if value.Network, err = n.Network.Intersect(capability.Network); err != nil {
			return nil, err
		}
	}
	value.Features = n.Features
	value.ExcludedFeatures = n.ExcludedFeatures
	return value, nil
}

// Cost orders specs cheapest first. Memory and disks are deliberately
// excluded; cores dominate pricing, and a GPU costs roughly two orders of
// magnitude more than a core.
func (n *NodeSpec) Cost() int {
	return countFloor(n.CoreCount) + 100*countFloor(n.GPUCount)
}

// ExpandByNodeCount splits a multi-node spec into single-node copies, one per
// requested node. A spec without a node count expands to one node.
func (n *NodeSpec) ExpandByNodeCount() []*NodeSpec {
	count := countFloor(n.NodeCount)
	if count < 1 {
		count = 1
	}
	nodes := make([]*NodeSpec, 0, count)
	for i := 0; i < count; i++ {
		copied := *n
		copied.NodeCount = searchspace.ExactCount(1)
		nodes = append(nodes, &copied)
	}
	return nodes
}

// countFloor returns the smallest value a count space admits, zero when unset.
func countFloor(c searchspace.CountSpace) int {
	switch {
	case !c.IsSet():
		return 0
	default:
		if v, ok := c.Exact(); ok {
			return v
		}
		if r, ok := c.Range(); ok {
			return r.Min
		}
		floor := 0
		alternatives, _ := c.Alternatives()
		for i, alt := range alternatives {
			if i == 0 || alt.Min < floor {
				floor = alt.Min
			}
		}
		return floor
	}
}
