package searchspace

import (
	"fmt"
	"strings"
)

type countKind uint8

const (
	countUnset countKind = iota
	countExact
	countRange
	countAnyOf
)

// CountSpace describes a constraint on a countable resource. It is a tagged
// union over four shapes: unset (no constraint), an exact count, a single
// range, or a list of alternative ranges with OR semantics. The zero value is
// unset. Values are normalized at construction, consumers never widen or
// rewrite a CountSpace in place.
type CountSpace struct {
	kind  countKind
	exact int
	rng   IntRange
	alts  []IntRange
}

// NoCount returns the unset constraint.
func NoCount() CountSpace {
	return CountSpace{}
}

// ExactCount constrains to one exact value.
func ExactCount(v int) CountSpace {
	return CountSpace{kind: countExact, exact: v}
}

// RangeCount constrains to a single range.
func RangeCount(r IntRange) CountSpace {
	return CountSpace{kind: countRange, rng: r}
}

// AnyCount constrains to a list of alternative ranges, any one of which may
// be satisfied.
func AnyCount(ranges ...IntRange) CountSpace {
	return CountSpace{kind: countAnyOf, alts: append([]IntRange(nil), ranges...)}
}

// IsSet reports whether the constraint carries any shape at all.
func (c CountSpace) IsSet() bool {
	return c.kind != countUnset
}

// Exact returns the exact value when the constraint has the exact shape.
func (c CountSpace) Exact() (int, bool) {
	return c.exact, c.kind == countExact
}

// Range returns the range when the constraint has the range shape.
func (c CountSpace) Range() (IntRange, bool) {
	return c.rng, c.kind == countRange
}

// Alternatives returns the alternative ranges when the constraint has the
// list shape.
func (c CountSpace) Alternatives() ([]IntRange, bool) {
	if c.kind != countAnyOf {
		return nil, false
	}
	return append([]IntRange(nil), c.alts...), true
}

// Equal reports structural equality.
func (c CountSpace) Equal(o CountSpace) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case countExact:
		return c.exact == o.exact
	case countRange:
		return c.rng == o.rng
	case countAnyOf:
		if len(c.alts) != len(o.alts) {
			return false
		}
		for i, r := range c.alts {
			if r != o.alts[i] {
				return false
			}
		}
	}
	return true
}

func (c CountSpace) String() string {
	switch c.kind {
	case countExact:
		return fmt.Sprintf("%d", c.exact)
	case countRange:
		return c.rng.String()
	case countAnyOf:
		parts := make([]string, len(c.alts))
		for i, r := range c.alts {
			parts[i] = r.String()
		}
		return "(" + strings.Join(parts, "|") + ")"
	default:
		return "<unset>"
	}
}

// CheckCountSpace reports whether the capability satisfies the requirement,
// dispatching on the requirement's shape. An unset requirement is always
// satisfied; a set requirement needs a non-unset capability.
func CheckCountSpace(requirement, capability CountSpace) *Result {
	result := NewResult()
	if !requirement.IsSet() {
		return result
	}
	if !capability.IsSet() {
		result.AddReason("if requirement is set, capability shouldn't be none")
		return result
	}
	switch requirement.kind {
	case countExact:
		req := requirement.exact
		switch capability.kind {
		case countExact:
			if req != capability.exact {
				result.AddReason(fmt.Sprintf(
					"requirement is an exact number, capability should match, "+
						"requirement: %d, capability: %d", req, capability.exact))
			}
		case countRange:
			if !capability.rng.Check(ExactCount(req)).OK() {
				result.AddReason(fmt.Sprintf(
					"requirement is an exact number, capability should include it, "+
						"requirement: %d, capability: %s", req, capability))
			}
		case countAnyOf:
			if !Exactly(req).Check(capability).OK() {
				result.AddReason(fmt.Sprintf(
					"requirement is an exact number, no capability matched, "+
						"requirement: %d, capability: %s", req, capability))
			}
		}
	case countRange:
		result.Merge(requirement.rng.Check(capability), "")
	case countAnyOf:
		supported := false
		for _, item := range requirement.alts {
			if item.Check(capability).OK() {
				supported = true
			}
		}
		if !supported {
			result.AddReason(fmt.Sprintf(
				"no capability matches requirement, requirement: %s, capability: %s",
				requirement, capability))
		}
	}
	return result
}

// GenerateMinCount collapses a matching requirement/capability pair into the
// smallest satisfying count. An unset requirement adopts the capability as a
// whole; when both sides are unset the result is zero. Among alternative
// requirement ranges the cheapest satisfying alternative wins, and the
// first-declared alternative wins ties.
func GenerateMinCount(requirement, capability CountSpace) (int, error) {
	if check := CheckCountSpace(requirement, capability); !check.OK() {
		return 0, notSupported("get min value", check)
	}
	if !requirement.IsSet() {
		if !capability.IsSet() {
			return 0, nil
		}
		requirement = capability
	}
	switch requirement.kind {
	case countExact:
		return requirement.exact, nil
	case countRange:
		return requirement.rng.GenerateMin(capability)
	default:
		result := Unlimited
		for _, item := range requirement.alts {
			if !item.Check(capability).OK() {
				continue
			}
			min, err := item.GenerateMin(capability)
			if err != nil {
				return 0, err
			}
			if min < result {
				result = min
			}
		}
		return result, nil
	}
}

// IntersectCountSpace narrows the requirement by a matching capability.
func IntersectCountSpace(requirement, capability CountSpace) (CountSpace, error) {
	if check := CheckCountSpace(requirement, capability); !check.OK() {
		return CountSpace{}, notSupported("get intersect", check)
	}
	if !requirement.IsSet() {
		return capability, nil
	}
	switch requirement.kind {
	case countExact:
		return requirement, nil
	case countRange:
		return requirement.rng.Intersect(capability)
	default:
		return CountSpace{}, fmt.Errorf(
			"intersect isn't supported on alternative requirement %s", requirement)
	}
}

// CountSpaceToRange converts a constraint to an equivalent single range. An
// unset constraint becomes the unbounded range; alternatives have no single
// range equivalent.
func CountSpaceToRange(c CountSpace) (IntRange, error) {
	switch c.kind {
	case countUnset:
		return IntRange{Min: -Unlimited, Max: Unlimited, MaxInclusive: true}, nil
	case countExact:
		return Exactly(c.exact), nil
	case countRange:
		return c.rng, nil
	default:
		return IntRange{}, fmt.Errorf("no single range equivalent for %s", c)
	}
}
