package searchspace

import (
	"fmt"
	"strings"
)

// SetSpace is a typed set of discrete option values with an allow/exclude
// polarity. When Allow is true the set lists the only permitted values; when
// false it lists values that must not be offered by the other side.
// Iteration order is insertion order, which keeps reasons and generated
// results deterministic.
type SetSpace[T comparable] struct {
	allow bool
	items map[T]struct{}
	order []T
}

// NewSetSpace builds a set with the given polarity and initial values.
func NewSetSpace[T comparable](allow bool, values ...T) *SetSpace[T] {
	s := &SetSpace[T]{allow: allow, items: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// AllowOnly builds an allow set containing the given values. A scalar option
// is normalized to a singleton allow set at construction, never widened later.
func AllowOnly[T comparable](values ...T) *SetSpace[T] {
	return NewSetSpace(true, values...)
}

// Exclude builds an exclusion set containing the given values.
func Exclude[T comparable](values ...T) *SetSpace[T] {
	return NewSetSpace(false, values...)
}

// Add inserts a value, keeping insertion order and ignoring duplicates.
func (s *SetSpace[T]) Add(v T) {
	if _, ok := s.items[v]; ok {
		return
	}
	if s.items == nil {
		s.items = make(map[T]struct{})
	}
	s.items[v] = struct{}{}
	s.order = append(s.order, v)
}

// Contains reports whether the set holds the value.
func (s *SetSpace[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[v]
	return ok
}

// Len returns the number of values.
func (s *SetSpace[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IsAllowSet reports the polarity.
func (s *SetSpace[T]) IsAllowSet() bool {
	return s != nil && s.allow
}

// Values returns the values in insertion order.
func (s *SetSpace[T]) Values() []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s.order...)
}

// Single returns the sole value when the set holds exactly one.
func (s *SetSpace[T]) Single() (T, bool) {
	if s.Len() != 1 {
		var zero T
		return zero, false
	}
	return s.order[0], true
}

// Clone returns an independent copy.
func (s *SetSpace[T]) Clone() *SetSpace[T] {
	if s == nil {
		return nil
	}
	return NewSetSpace(s.allow, s.order...)
}

// Equal reports whether both sets hold the same polarity and values.
func (s *SetSpace[T]) Equal(o *SetSpace[T]) bool {
	if s == nil || o == nil {
		return s.Len() == 0 && o.Len() == 0 && s.IsAllowSet() == o.IsAllowSet()
	}
	if s.allow != o.allow || len(s.order) != len(o.order) {
		return false
	}
	for _, v := range s.order {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether the set contains every value of other.
func (s *SetSpace[T]) IsSupersetOf(other *SetSpace[T]) bool {
	for _, v := range other.Values() {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s *SetSpace[T]) String() string {
	if s == nil {
		return "<unset>"
	}
	parts := make([]string, len(s.order))
	for i, v := range s.order {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("allowed:%t,items:[%s]", s.allow, strings.Join(parts, ","))
}

// Check reports whether the capability satisfies this set requirement. The
// capability side must always be an allow set describing what is offered. An
// allow requirement needs the capability to offer every demanded value; an
// exclusion requirement needs the capability to offer none of the excluded
// values.
func (s *SetSpace[T]) Check(capability *SetSpace[T]) *Result {
	result := NewResult()
	if s.allow && s.Len() > 0 && capability.Len() == 0 {
		result.AddReason(
			"requirement is a non-empty allow set, capability shouldn't be empty")
		return result
	}
	if capability != nil && !capability.allow {
		result.AddReason("capability must be an allow set")
		return result
	}
	if s.allow {
		if !capability.IsSupersetOf(s) {
			result.AddReason(fmt.Sprintf(
				"capability cannot support some of requirement, requirement: '%s', capability: '%s'",
				s, capability))
		}
	} else {
		var overlap []string
		for _, v := range s.Values() {
			if capability.Contains(v) {
				overlap = append(overlap, fmt.Sprintf("%v", v))
			}
		}
		if len(overlap) > 0 {
			result.AddReason(fmt.Sprintf(
				"requirement excludes [%s]", strings.Join(overlap, ",")))
		}
	}
	return result
}

// GenerateMin returns the minimal satisfying set: for a non-empty allow
// requirement this is the requirement's own values restricted to the
// capability, otherwise nothing is pinned.
func (s *SetSpace[T]) GenerateMin(capability *SetSpace[T]) (*SetSpace[T], error) {
	if check := s.Check(capability); !check.OK() {
		return nil, notSupported("get min value", check)
	}
	if !s.allow || s.Len() == 0 {
		return nil, nil
	}
	out := NewSetSpace[T](true)
	for _, v := range s.order {
		if capability.Contains(v) {
			out.Add(v)
		}
	}
	return out, nil
}

// Intersect returns the values present on both sides.
func (s *SetSpace[T]) Intersect(capability *SetSpace[T]) (*SetSpace[T], error) {
	return s.GenerateMin(capability)
}

// CheckSetSpace reports whether at least one of the requirement's options is
// offered by the capability. A nil requirement is always satisfied; a set
// requirement needs a non-empty capability. Both sides are allow sets, a
// scalar option must have been normalized to a singleton set beforehand.
func CheckSetSpace[T comparable](requirement, capability *SetSpace[T]) *Result {
	result := NewResult()
	if capability.Len() == 0 {
		result.AddReason("capability shouldn't be none")
		return result
	}
	if requirement == nil {
		return result
	}
	for _, v := range requirement.Values() {
		if capability.Contains(v) {
			return result
		}
	}
	result.AddReason(fmt.Sprintf(
		"requirement not supported in capability, requirement: %s, capability: %s",
		requirement, capability))
	return result
}

// MinByPriority picks the minimal satisfying option: the first value of the
// priority list offered by both sides. The priority list is an explicit
// parameter so the tie-break rule is part of the call contract.
func MinByPriority[T comparable](requirement, capability *SetSpace[T], priority []T) (T, error) {
	var zero T
	if check := CheckSetSpace(requirement, capability); !check.OK() {
		return zero, notSupported("get min value", check)
	}
	if requirement == nil {
		requirement = capability
	}
	for _, item := range priority {
		if requirement.Contains(item) && capability.Contains(item) {
			return item, nil
		}
	}
	return zero, &NotSupportedError{
		Operation: "get min value",
		Reasons: []string{fmt.Sprintf(
			"no priority value present on both sides, requirement: %s, capability: %s",
			requirement, capability)},
	}
}

// IntersectSet returns the requirement's options restricted to the
// capability; a nil requirement keeps the whole capability. Priority plays no
// part in intersection.
func IntersectSet[T comparable](requirement, capability *SetSpace[T]) (*SetSpace[T], error) {
	if check := CheckSetSpace(requirement, capability); !check.OK() {
		return nil, notSupported("get intersect", check)
	}
	if requirement == nil {
		requirement = capability
	}
	out := NewSetSpace[T](true)
	for _, v := range requirement.Values() {
		if capability.Contains(v) {
			out.Add(v)
		}
	}
	return out, nil
}
