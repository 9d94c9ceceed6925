package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// NetworkDataPath identifies how packets reach the guest.
type NetworkDataPath string

const (
	DataPathSynthetic NetworkDataPath = "Synthetic"
	DataPathSRIOV     NetworkDataPath = "Sriov"
)

// DataPathPriority prefers the accelerated path when both sides offer it.
var DataPathPriority = []NetworkDataPath{DataPathSRIOV, DataPathSynthetic}

// NetworkInterfaceOptions constrains the network configuration of a node.
// NICCount is the number of interfaces attached at provisioning time;
// MaxNICCount is the ceiling the node can grow to afterwards.
type NetworkInterfaceOptions struct {
	DataPath    *searchspace.SetSpace[NetworkDataPath]
	NICCount    searchspace.CountSpace
	MaxNICCount searchspace.CountSpace
}

// DefaultNetworkOptions returns the widest requirement: either data path and
// at least one interface.
func DefaultNetworkOptions() *NetworkInterfaceOptions {
	return &NetworkInterfaceOptions{
		DataPath: searchspace.AllowOnly(DataPathSynthetic, DataPathSRIOV),
		NICCount: searchspace.RangeCount(searchspace.AtLeast(1)),
	}
}

func (n *NetworkInterfaceOptions) String() string {
	return fmt.Sprintf("data_path:%s,nic_count:%s,max_nic_count:%s",
		n.DataPath, n.NICCount, n.MaxNICCount)
}

// Check reports whether the capability satisfies the network constraints.
func (n *NetworkInterfaceOptions) Check(capability *NetworkInterfaceOptions) *searchspace.Result {
	result := searchspace.NewResult()
	if capability == nil {
		result.AddReason("capability is missing, it may be caused by a failed preparation")
		return result
	}

	result.Merge(searchspace.CheckCountSpace(n.NICCount, capability.NICCount), "nic_count")
	if n.DataPath.Len() > 0 || capability.DataPath.Len() > 0 {
		result.Merge(searchspace.CheckSetSpace(n.DataPath, capability.DataPath), "data_path")
	}
	result.Merge(searchspace.CheckCountSpace(n.MaxNICCount, capability.MaxNICCount), "max_nic_count")
	return result
}

// GenerateMin pins the cheapest satisfying network configuration. At least
// one side must constrain the provisioned interface count.
func (n *NetworkInterfaceOptions) GenerateMin(capability *NetworkInterfaceOptions) (*NetworkInterfaceOptions, error) {
	if check := n.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get min value", Reasons: check.Reasons(),
		}
	}

	value := &NetworkInterfaceOptions{}
	var err error
	if value.MaxNICCount, err = minCount(n.MaxNICCount, capability.MaxNICCount); err != nil {
		return nil, err
	}
	if !n.NICCount.IsSet() && !capability.NICCount.IsSet() {
		return nil, fmt.Errorf("nic_count cannot be zero on both requirement and capability")
	}
	if value.NICCount, err = minCount(n.NICCount, capability.NICCount); err != nil {
		return nil, err
	}
	if n.DataPath.Len() > 0 || capability.DataPath.Len() > 0 {
		dataPath, err := searchspace.MinByPriority(n.DataPath, capability.DataPath, DataPathPriority)
		if err != nil {
			return nil, err
		}
		value.DataPath = searchspace.AllowOnly(dataPath)
	}
	return value, nil
}

// Intersect narrows the constraints to what both sides accept.
func (n *NetworkInterfaceOptions) Intersect(capability *NetworkInterfaceOptions) (*NetworkInterfaceOptions, error) {
	if check := n.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get intersect", Reasons: check.Reasons(),
		}
	}

	value := &NetworkInterfaceOptions{}
	var err error
	if value.MaxNICCount, err = intersectCount(n.MaxNICCount, capability.MaxNICCount); err != nil {
		return nil, err
	}
	if value.NICCount, err = intersectCount(n.NICCount, capability.NICCount); err != nil {
		return nil, err
	}
	if value.DataPath, err = intersectSet(n.DataPath, capability.DataPath); err != nil {
		return nil, err
	}
	return value, nil
}
