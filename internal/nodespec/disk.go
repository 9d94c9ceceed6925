package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// DiskType identifies a managed disk offering.
type DiskType string

const (
	DiskStandardHDD  DiskType = "StandardHDDLRS"
	DiskStandardSSD  DiskType = "StandardSSDLRS"
	DiskEphemeral    DiskType = "Ephemeral"
	DiskPremiumSSD   DiskType = "PremiumSSDLRS"
	DiskPremiumV2SSD DiskType = "PremiumV2SSDLRS"
	DiskUltraSSD     DiskType = "UltraSSDLRS"
)

// DiskTypePriority orders disk types by cost, cheapest first. Min generation
// walks this list to break ties between equally acceptable types; runbooks
// depend on this exact ordering.
var DiskTypePriority = []DiskType{
	DiskStandardHDD,
	DiskStandardSSD,
	DiskEphemeral,
	DiskPremiumSSD,
	DiskPremiumV2SSD,
	DiskUltraSSD,
}

// OSDiskTypes are the types an OS disk may use.
var OSDiskTypes = []DiskType{
	DiskStandardHDD,
	DiskStandardSSD,
	DiskEphemeral,
	DiskPremiumSSD,
}

// DataDiskTypes are the types a data disk may use.
var DataDiskTypes = []DiskType{
	DiskStandardHDD,
	DiskStandardSSD,
	DiskPremiumSSD,
	DiskPremiumV2SSD,
	DiskUltraSSD,
}

// DiskControllerType identifies the disk controller exposed to the guest.
type DiskControllerType string

const (
	ControllerSCSI DiskControllerType = "SCSI"
	ControllerNVMe DiskControllerType = "NVME"
)

// DiskControllerPriority prefers SCSI, the widely supported default.
var DiskControllerPriority = []DiskControllerType{ControllerSCSI, ControllerNVMe}

// DiskCachingType is the host caching mode for data disks.
type DiskCachingType string

const (
	CachingNone      DiskCachingType = "None"
	CachingReadOnly  DiskCachingType = "ReadOnly"
	CachingReadWrite DiskCachingType = "ReadWrite"
)

// DiskOptions constrains the storage configuration of a node. On the
// requirement side it narrows what a test demands; on the capability side it
// describes what a SKU offers.
type DiskOptions struct {
	OSDiskType         *searchspace.SetSpace[DiskType]
	OSDiskSizeGB       searchspace.CountSpace
	DataDiskType       *searchspace.SetSpace[DiskType]
	DataDiskCount      searchspace.CountSpace
	DataDiskCaching    DiskCachingType
	DataDiskIOPS       searchspace.CountSpace
	DataDiskThroughput searchspace.CountSpace
	DataDiskSizeGB     searchspace.CountSpace
	MaxDataDiskCount   searchspace.CountSpace
	ControllerType     *searchspace.SetSpace[DiskControllerType]
}

// DefaultDiskOptions returns the widest requirement: any disk type, any
// controller, no count constraints.
func DefaultDiskOptions() *DiskOptions {
	return &DiskOptions{
		OSDiskType:     searchspace.AllowOnly(OSDiskTypes...),
		DataDiskType:   searchspace.AllowOnly(DataDiskTypes...),
		ControllerType: searchspace.AllowOnly(DiskControllerPriority...),
	}
}

func (d *DiskOptions) String() string {
	return fmt.Sprintf(
		"os_type:%s,os_size:%s,data_type:%s,count:%s,caching:%s,iops:%s,throughput:%s,size:%s,max_count:%s,controller:%s",
		d.OSDiskType, d.OSDiskSizeGB, d.DataDiskType, d.DataDiskCount,
		d.DataDiskCaching, d.DataDiskIOPS, d.DataDiskThroughput,
		d.DataDiskSizeGB, d.MaxDataDiskCount, d.ControllerType)
}

// Check reports whether the capability satisfies every constrained field,
// with field-named reasons on failure.
func (d *DiskOptions) Check(capability *DiskOptions) *searchspace.Result {
	result := searchspace.NewResult()
	if capability == nil {
		result.AddReason("capability is missing, it may be caused by a failed preparation")
		return result
	}

	if d.OSDiskType.Len() > 0 || capability.OSDiskType.Len() > 0 {
		result.Merge(searchspace.CheckSetSpace(d.OSDiskType, capability.OSDiskType), "os_disk_type")
	}
	result.Merge(searchspace.CheckCountSpace(d.OSDiskSizeGB, capability.OSDiskSizeGB), "os_disk_size")
	if d.DataDiskType.Len() > 0 || capability.DataDiskType.Len() > 0 {
		result.Merge(searchspace.CheckSetSpace(d.DataDiskType, capability.DataDiskType), "data_disk_type")
	}
	result.Merge(searchspace.CheckCountSpace(d.DataDiskCount, capability.DataDiskCount), "data_disk_count")
	result.Merge(searchspace.CheckCountSpace(d.DataDiskIOPS, capability.DataDiskIOPS), "data_disk_iops")
	result.Merge(searchspace.CheckCountSpace(d.DataDiskThroughput, capability.DataDiskThroughput), "data_disk_throughput")
	result.Merge(searchspace.CheckCountSpace(d.DataDiskSizeGB, capability.DataDiskSizeGB), "data_disk_size")
	result.Merge(searchspace.CheckCountSpace(d.MaxDataDiskCount, capability.MaxDataDiskCount), "max_data_disk_count")
	if d.ControllerType.Len() > 0 || capability.ControllerType.Len() > 0 {
		result.Merge(searchspace.CheckSetSpace(d.ControllerType, capability.ControllerType), "disk_controller_type")
	}
	return result
}

// GenerateMin collapses requirement and capability into the cheapest
// satisfying disk configuration. Disk and controller types resolve through
// their priority lists; counted fields resolve to their minimal values.
func (d *DiskOptions) GenerateMin(capability *DiskOptions) (*DiskOptions, error) {
	if check := d.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get min value", Reasons: check.Reasons(),
		}
	}

	value := &DiskOptions{}
	var err error
	if d.OSDiskType.Len() > 0 || capability.OSDiskType.Len() > 0 {
		osType, err := searchspace.MinByPriority(d.OSDiskType, capability.OSDiskType, DiskTypePriority)
		if err != nil {
			return nil, err
		}
		value.OSDiskType = searchspace.AllowOnly(osType)
	}
	if value.OSDiskSizeGB, err = minCount(d.OSDiskSizeGB, capability.OSDiskSizeGB); err != nil {
		return nil, err
	}
	if d.DataDiskType.Len() > 0 || capability.DataDiskType.Len() > 0 {
		dataType, err := searchspace.MinByPriority(d.DataDiskType, capability.DataDiskType, DiskTypePriority)
		if err != nil {
			return nil, err
		}
		value.DataDiskType = searchspace.AllowOnly(dataType)
	}
	if value.DataDiskCount, err = minCount(d.DataDiskCount, capability.DataDiskCount); err != nil {
		return nil, err
	}
	if value.DataDiskIOPS, err = minCount(d.DataDiskIOPS, capability.DataDiskIOPS); err != nil {
		return nil, err
	}
	if value.DataDiskThroughput, err = minCount(d.DataDiskThroughput, capability.DataDiskThroughput); err != nil {
		return nil, err
	}
	if value.DataDiskSizeGB, err = minCount(d.DataDiskSizeGB, capability.DataDiskSizeGB); err != nil {
		return nil, err
	}
	if value.MaxDataDiskCount, err = minCount(d.MaxDataDiskCount, capability.MaxDataDiskCount); err != nil {
		return nil, err
	}
	if d.DataDiskCaching != "" {
		value.DataDiskCaching = d.DataDiskCaching
	} else {
		value.DataDiskCaching = capability.DataDiskCaching
	}
	if d.ControllerType.Len() > 0 || capability.ControllerType.Len() > 0 {
		controller, err := searchspace.MinByPriority(d.ControllerType, capability.ControllerType, DiskControllerPriority)
		if err != nil {
			return nil, err
		}
		value.ControllerType = searchspace.AllowOnly(controller)
	}
	return value, nil
}

// Intersect narrows every constrained field to the values present on both
// sides, keeping sets as sets instead of pinning single values.
func (d *DiskOptions) Intersect(capability *DiskOptions) (*DiskOptions, error) {
	if check := d.Check(capability); !check.OK() {
		return nil, &searchspace.NotSupportedError{
			Operation: "get intersect", Reasons: check.Reasons(),
		}
	}

	value := &DiskOptions{DataDiskCaching: d.DataDiskCaching}
	var err error
	if value.OSDiskType, err = intersectSet(d.OSDiskType, capability.OSDiskType); err != nil {
		return nil, err
	}
	if value.OSDiskSizeGB, err = intersectCount(d.OSDiskSizeGB, capability.OSDiskSizeGB); err != nil {
		return nil, err
	}
	if value.DataDiskType, err = intersectSet(d.DataDiskType, capability.DataDiskType); err != nil {
		return nil, err
	}
	if value.DataDiskCount, err = intersectCount(d.DataDiskCount, capability.DataDiskCount); err != nil {
		return nil, err
	}
	if value.DataDiskIOPS, err = intersectCount(d.DataDiskIOPS, capability.DataDiskIOPS); err != nil {
		return nil, err
	}
	if value.DataDiskThroughput, err = intersectCount(d.DataDiskThroughput, capability.DataDiskThroughput); err != nil {
		return nil, err
	}
	if value.DataDiskSizeGB, err = intersectCount(d.DataDiskSizeGB, capability.DataDiskSizeGB); err != nil {
		return nil, err
	}
	if value.MaxDataDiskCount, err = intersectCount(d.MaxDataDiskCount, capability.MaxDataDiskCount); err != nil {
		return nil, err
	}
	if value.ControllerType, err = intersectSet(d.ControllerType, capability.ControllerType); err != nil {
		return nil, err
	}
	if value.DataDiskCaching == "" {
		value.DataDiskCaching = capability.DataDiskCaching
	}
	return value, nil
}

// minCount resolves a counted field, skipping fields unset on both sides.
func minCount(requirement, capability searchspace.CountSpace) (searchspace.CountSpace, error) {
	if !requirement.IsSet() && !capability.IsSet() {
		return searchspace.NoCount(), nil
	}
	min, err := searchspace.GenerateMinCount(requirement, capability)
	if err != nil {
		return searchspace.CountSpace{}, err
	}
	return searchspace.ExactCount(min), nil
}

// intersectCount narrows a counted field, skipping fields unset on both sides.
func intersectCount(requirement, capability searchspace.CountSpace) (searchspace.CountSpace, error) {
	if !requirement.IsSet() && !capability.IsSet() {
		return searchspace.NoCount(), nil
	}
	return searchspace.IntersectCountSpace(requirement, capability)
}

// intersectSet narrows an option field, skipping fields unset on both sides.
func intersectSet[T comparable](requirement, capability *searchspace.SetSpace[T]) (*searchspace.SetSpace[T], error) {
	if requirement.Len() == 0 && capability.Len() == 0 {
		return nil, nil
	}
	return searchspace.IntersectSet(requirement, capability)
}
