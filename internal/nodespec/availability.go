package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// AvailabilityType identifies the redundancy model of a deployment.
type AvailabilityType string

const (
	AvailabilityDefault AvailabilityType = "Default"
	AvailabilityNone    AvailabilityType = "NoRedundancy"
	AvailabilitySet     AvailabilityType = "AvailabilitySet"
	AvailabilityZone    AvailabilityType = "AvailabilityZone"
)

// AvailabilitySetting constrains the redundancy model and, for zonal
// deployments, the acceptable zones.
type AvailabilitySetting struct {
	Types *searchspace.SetSpace[AvailabilityType]
	Zones *searchspace.SetSpace[int]
}

// DefaultAvailability accepts any concrete redundancy model.
func DefaultAvailability() *AvailabilitySetting {
	return &AvailabilitySetting{
		Types: searchspace.AllowOnly(
			AvailabilityNone, AvailabilitySet, AvailabilityZone),
	}
}

func (a *AvailabilitySetting) Kind() string { return KindAvailability }

func (a *AvailabilitySetting) String() string {
	return fmt.Sprintf("%s/%s/%s", a.Kind(), a.Types, a.Zones)
}

// Check reports whether the capability offers one of the acceptable
// redundancy models.
func (a *AvailabilitySetting) Check(capability FeatureSetting) *searchspace.Result {
	result := checkKind(a, capability)
	if !result.OK() {
		return result
	}
	other, ok := capability.(*AvailabilitySetting)
	if !ok {
		result.AddReason(fmt.Sprintf(
			"settings are different, requirement: %s, capability: %T", a.Kind(), capability))
		return result
	}
	result.Merge(searchspace.CheckSetSpace(a.Types, other.Types), "availability_type")
	return result
}

// GenerateMin keeps the intersected redundancy models and zones rather than
// pinning a single one: the deployment layer picks among what remains.
func (a *AvailabilitySetting) GenerateMin(capability FeatureSetting) (FeatureSetting, error) {
	if err := validateFeature(a, capability); err != nil {
		return nil, err
	}
	other := capability.(*AvailabilitySetting)

	value := &AvailabilitySetting{}
	var err error
	if value.Types, err = searchspace.IntersectSet(a.Types, other.Types); err != nil {
		return nil, err
	}
	if a.Zones.Len() > 0 {
		if value.Zones, err = searchspace.IntersectSet(a.Zones, other.Zones); err != nil {
			return nil, err
		}
	} else {
		value.Zones = other.Zones.Clone()
	}
	return value, nil
}
