package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// Document is a full requirement document: one or more node groups that must
// be satisfiable together.
type Document struct {
	Version     string            `yaml:"version" validate:"required,semver"`
	Name        string            `yaml:"name" validate:"required,min=1,max=100"`
	Description string            `yaml:"description,omitempty"`
	Nodes       []NodeRequirement `yaml:"nodes" validate:"required,min=1,dive"`
}

// NodeRequirement is the YAML form of a single node group requirement.
// Counted fields accept the shorthand forms decoded by Count.
type NodeRequirement struct {
	Name             string               `yaml:"name,omitempty"`
	NodeCount        Count                `yaml:"node_count,omitempty"`
	CoreCount        Count                `yaml:"core_count,omitempty"`
	MemoryMB         Count                `yaml:"memory_mb,omitempty"`
	GPUCount         Count                `yaml:"gpu_count,omitempty"`
	Disk             *DiskRequirement     `yaml:"disk,omitempty"`
	Network          *NetworkRequirement  `yaml:"network,omitempty"`
	Features         []FeatureRequirement `yaml:"features,omitempty" validate:"omitempty,dive"`
	ExcludedFeatures []FeatureRequirement `yaml:"excluded_features,omitempty" validate:"omitempty,dive"`
}

// DiskRequirement narrows storage. Option fields accept a scalar, a list, or
// an allow/items mapping.
type DiskRequirement struct {
	OSDiskType         Options[string] `yaml:"os_disk_type,omitempty"`
	OSDiskSizeGB       Count           `yaml:"os_disk_size_gb,omitempty"`
	DataDiskType       Options[string] `yaml:"data_disk_type,omitempty"`
	DataDiskCount      Count           `yaml:"data_disk_count,omitempty"`
	DataDiskCaching    string          `yaml:"data_disk_caching,omitempty" validate:"omitempty,oneof=None ReadOnly ReadWrite"`
	DataDiskIOPS       Count           `yaml:"data_disk_iops,omitempty"`
	DataDiskThroughput Count           `yaml:"data_disk_throughput,omitempty"`
	DataDiskSizeGB     Count           `yaml:"data_disk_size_gb,omitempty"`
	MaxDataDiskCount   Count           `yaml:"max_data_disk_count,omitempty"`
	ControllerType     Options[string] `yaml:"disk_controller_type,omitempty"`
}

// NetworkRequirement narrows networking.
type NetworkRequirement struct {
	DataPath    Options[string] `yaml:"data_path,omitempty"`
	NICCount    Count           `yaml:"nic_count,omitempty"`
	MaxNICCount Count           `yaml:"max_nic_count,omitempty"`
}

// FeatureRequirement selects one feature by type with its per-type options.
type FeatureRequirement struct {
	Type string `yaml:"type" validate:"required,oneof=gpu nvme availability security_profile"`

	// nvme
	DiskCount Count `yaml:"disk_count,omitempty"`

	// availability
	AvailabilityTypes Options[string] `yaml:"availability_types,omitempty"`
	Zones             []int           `yaml:"zones,omitempty" validate:"omitempty,dive,min=1"`

	// security_profile
	Profiles    Options[string] `yaml:"profiles,omitempty"`
	EncryptDisk *bool           `yaml:"encrypt_disk,omitempty"`
}

// Count decodes the counted-field shorthands. A bare integer means exactly
// that value, a mapping means a range, and a list means any of the listed
// ranges.
type Count struct {
	space searchspace.CountSpace
}

type rawRange struct {
	Min          *int  `yaml:"min"`
	Max          *int  `yaml:"max"`
	MaxInclusive *bool `yaml:"max_inclusive"`
}

func (r rawRange) toRange() (searchspace.IntRange, error) {
	min := 0
	if r.Min != nil {
		min = *r.Min
	}
	max := searchspace.Unlimited
	if r.Max != nil {
		max = *r.Max
	}
	inclusive := true
	if r.MaxInclusive != nil {
		inclusive = *r.MaxInclusive
	}
	return searchspace.NewIntRange(min, max, inclusive)
}

func (c *Count) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var exact int
		if err := value.Decode(&exact); err != nil {
			return err
		}
		c.space = searchspace.ExactCount(exact)
	case yaml.MappingNode:
		var raw rawRange
		if err := value.Decode(&raw); err != nil {
			return err
		}
		r, err := raw.toRange()
		if err != nil {
			return err
		}
		c.space = searchspace.RangeCount(r)
	case yaml.SequenceNode:
		ranges := make([]searchspace.IntRange, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind == yaml.ScalarNode {
				var exact int
				if err := item.Decode(&exact); err != nil {
					return err
				}
				ranges = append(ranges, searchspace.Exactly(exact))
				continue
			}
			var raw rawRange
			if err := item.Decode(&raw); err != nil {
				return err
			}
			r, err := raw.toRange()
			if err != nil {
				return err
			}
			ranges = append(ranges, r)
		}
		c.space = searchspace.AnyCount(ranges...)
	default:
		return fmt.Errorf("line %d: unsupported count form", value.Line)
	}
	return nil
}

// Space returns the decoded count space, unset when the field was absent.
func (c Count) Space() searchspace.CountSpace {
	return c.space
}

// Options decodes the option-field shorthands for string-like types. A bare
// scalar means only that value, a list means any listed value, and an
// allow/items mapping flips between allow and exclusion sets.
type Options[T ~string] struct {
	values  []T
	exclude bool
}

func (o *Options[T]) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		o.values = []T{T(single)}
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		o.values = convertValues[T](items)
	case yaml.MappingNode:
		var raw struct {
			Allow *bool    `yaml:"allow"`
			Items []string `yaml:"items"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		o.values = convertValues[T](raw.Items)
		o.exclude = raw.Allow != nil && !*raw.Allow
	default:
		return fmt.Errorf("line %d: unsupported option form", value.Line)
	}
	return nil
}

// Values returns the decoded items in document order.
func (o Options[T]) Values() []T {
	return o.values
}

// IsSet reports whether the field was present.
func (o Options[T]) IsSet() bool {
	return len(o.values) > 0
}

// Set converts the field into a set space, nil when the field was absent.
func (o Options[T]) Set() *searchspace.SetSpace[T] {
	if len(o.values) == 0 {
		return nil
	}
	if o.exclude {
		return searchspace.Exclude(o.values...)
	}
	return searchspace.AllowOnly(o.values...)
}

// SetAs converts into a set space of a different string-like type. Option
// fields decode as strings and convert at the nodespec boundary.
func SetAs[U ~string, T ~string](o Options[T]) *searchspace.SetSpace[U] {
	if len(o.values) == 0 {
		return nil
	}
	converted := make([]U, len(o.values))
	for i, v := range o.values {
		converted[i] = U(v)
	}
	if o.exclude {
		return searchspace.Exclude(converted...)
	}
	return searchspace.AllowOnly(converted...)
}

func convertValues[T ~string](items []string) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = T(item)
	}
	return out
}
