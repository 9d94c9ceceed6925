package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// Feature kinds understood by the node specification.
const (
	KindGpu             = "Gpu"
	KindNvme            = "Nvme"
	KindAvailability    = "Availability"
	KindSecurityProfile = "SecurityProfile"
)

// FeatureSetting is the contract for a per-feature requirement or capability
// attached to a node. Settings of the same kind are matched against each
// other; a kind present in a requirement but absent from a capability fails
// the node-level check.
type FeatureSetting interface {
	Kind() string
	Check(capability FeatureSetting) *searchspace.Result
	GenerateMin(capability FeatureSetting) (FeatureSetting, error)
}

// Feature is the default setting for features that carry no options beyond
// their presence.
type Feature struct {
	Name string
}

func (f Feature) Kind() string { return f.Name }

func (f Feature) String() string { return f.Name }

func (f Feature) Check(capability FeatureSetting) *searchspace.Result {
	return checkKind(f, capability)
}

func (f Feature) GenerateMin(capability FeatureSetting) (FeatureSetting, error) {
	if err := validateFeature(f, capability); err != nil {
		return nil, err
	}
	return Feature{Name: f.Name}, nil
}

// checkKind performs the shared kind comparison every setting starts from.
func checkKind(requirement, capability FeatureSetting) *searchspace.Result {
	result := searchspace.NewResult()
	if capability == nil {
		result.AddReason("capability is missing, it may be caused by a failed preparation")
		return result
	}
	if requirement.Kind() != capability.Kind() {
		result.AddReason(fmt.Sprintf(
			"settings are different, requirement: %s, capability: %s",
			requirement.Kind(), capability.Kind()))
	}
	return result
}

// validateFeature gates min generation behind a passing check.
func validateFeature(requirement, capability FeatureSetting) error {
	if check := requirement.Check(capability); !check.OK() {
		return &searchspace.NotSupportedError{
			Operation: "get min value",
			Reasons:   check.Reasons(),
		}
	}
	return nil
}

// FeatureSet is an ordered collection of settings keyed by kind, with the
// same allow/exclude polarity as a SetSpace. Required features form an allow
// set; excluded features form an exclusion set.
type FeatureSet struct {
	allow  bool
	order  []string
	byKind map[string]FeatureSetting
}

// NewFeatureSet builds a feature set with the given polarity.
func NewFeatureSet(allow bool, settings ...FeatureSetting) *FeatureSet {
	fs := &FeatureSet{allow: allow, byKind: make(map[string]FeatureSetting, len(settings))}
	for _, s := range settings {
		fs.Add(s)
	}
	return fs
}

// RequireFeatures builds an allow set of settings.
func RequireFeatures(settings ...FeatureSetting) *FeatureSet {
	return NewFeatureSet(true, settings...)
}

// ExcludeFeatures builds an exclusion set of settings.
func ExcludeFeatures(settings ...FeatureSetting) *FeatureSet {
	return NewFeatureSet(false, settings...)
}

// Add inserts a setting, replacing an earlier setting of the same kind.
func (fs *FeatureSet) Add(setting FeatureSetting) {
	if setting == nil {
		return
	}
	kind := setting.Kind()
	if _, ok := fs.byKind[kind]; !ok {
		fs.order = append(fs.order, kind)
	}
	fs.byKind[kind] = setting
}

// Get returns the setting of the given kind.
func (fs *FeatureSet) Get(kind string) (FeatureSetting, bool) {
	if fs == nil {
		return nil, false
	}
	s, ok := fs.byKind[kind]
	return s, ok
}

// Len returns the number of settings.
func (fs *FeatureSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.order)
}

// IsAllowSet reports the polarity.
func (fs *FeatureSet) IsAllowSet() bool {
	return fs != nil && fs.allow
}

// Settings returns the settings in insertion order.
func (fs *FeatureSet) Settings() []FeatureSetting {
	if fs == nil {
		return nil
	}
	out := make([]FeatureSetting, 0, len(fs.order))
	for _, kind := range fs.order {
		out = append(out, fs.byKind[kind])
	}
	return out
}

// Kinds returns the feature kinds in insertion order.
func (fs *FeatureSet) Kinds() []string {
	if fs == nil {
		return nil
	}
	return append([]string(nil), fs.order...)
}
