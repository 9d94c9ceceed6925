package searchspace

import (
	"fmt"
	"math"
)

// Unlimited marks an open-ended upper bound.
const Unlimited = math.MaxInt

// IntRange is a closed or half-open integer interval used to constrain
// countable resources such as cores, disks or IOPS. The interval covers
// [Min, Max] when MaxInclusive is true, otherwise [Min, Max).
type IntRange struct {
	Min          int
	Max          int
	MaxInclusive bool
}

// NewIntRange validates and constructs a range. Min must not exceed Max, and
// a zero-width exclusive range is rejected because it contains no value.
func NewIntRange(min, max int, maxInclusive bool) (IntRange, error) {
	if min > max {
		return IntRange{}, &InvalidRangeError{
			Min: min, Max: max, MaxInclusive: maxInclusive,
			Message: fmt.Sprintf("min %d shouldn't be greater than max %d", min, max),
		}
	}
	if min == max && !maxInclusive {
		return IntRange{}, &InvalidRangeError{
			Min: min, Max: max, MaxInclusive: maxInclusive,
			Message: "min shouldn't be equal to max when max is exclusive",
		}
	}
	return IntRange{Min: min, Max: max, MaxInclusive: maxInclusive}, nil
}

// Exactly returns the single-value range [v, v].
func Exactly(v int) IntRange {
	return IntRange{Min: v, Max: v, MaxInclusive: true}
}

// Between returns the inclusive range [min, max].
func Between(min, max int) IntRange {
	return IntRange{Min: min, Max: max, MaxInclusive: true}
}

// BetweenExclusive returns the half-open range [min, max).
func BetweenExclusive(min, max int) IntRange {
	return IntRange{Min: min, Max: max, MaxInclusive: false}
}

// AtLeast returns the open-ended range [min, Unlimited].
func AtLeast(min int) IntRange {
	return IntRange{Min: min, Max: Unlimited, MaxInclusive: true}
}

func (r IntRange) String() string {
	if r.Max == Unlimited {
		return fmt.Sprintf("[%d,]", r.Min)
	}
	if r.MaxInclusive {
		return fmt.Sprintf("[%d,%d(inc)]", r.Min, r.Max)
	}
	return fmt.Sprintf("[%d,%d(exc)]", r.Min, r.Max)
}

// upperValue is the largest value inside the interval.
func (r IntRange) upperValue() int {
	if r.MaxInclusive {
		return r.Max
	}
	return r.Max - 1
}

// Check reports whether a capability can satisfy this range requirement. The
// capability may be an exact count, another range, or alternative ranges; an
// unset capability always fails.
func (r IntRange) Check(capability CountSpace) *Result {
	result := NewResult()
	switch capability.kind {
	case countUnset:
		result.AddReason("capability shouldn't be none")
	case countExact:
		v := capability.exact
		switch {
		case v < r.Min:
			result.AddReason(fmt.Sprintf(
				"capability %d is smaller than requirement min %d", v, r.Min))
		case v > r.Max:
			result.AddReason(fmt.Sprintf(
				"capability %d is bigger than requirement max %d", v, r.Max))
		case v == r.Max && !r.MaxInclusive:
			result.AddReason(fmt.Sprintf(
				"capability %d equals requirement max %d, but requirement excludes its max", v, r.Max))
		}
	case countRange:
		c := capability.rng
		switch {
		case c.Max < r.Min:
			result.AddReason(fmt.Sprintf(
				"capability max %d is smaller than requirement min %d", c.Max, r.Min))
		case c.Max == r.Min && !c.MaxInclusive:
			result.AddReason(fmt.Sprintf(
				"capability max %d equals requirement min %d, but capability excludes its max", c.Max, r.Min))
		case c.Min > r.Max:
			result.AddReason(fmt.Sprintf(
				"capability min %d is bigger than requirement max %d", c.Min, r.Max))
		case c.Min == r.Max && !r.MaxInclusive:
			result.AddReason(fmt.Sprintf(
				"capability min %d equals requirement max %d, but requirement excludes its max", c.Min, r.Max))
		}
	case countAnyOf:
		matched := false
		for _, item := range capability.alts {
			if r.Check(RangeCount(item)).OK() {
				matched = true
				break
			}
		}
		if !matched {
			result.AddReason(fmt.Sprintf(
				"no capability matches requirement, requirement: %s, capability: %s",
				r, capability))
		}
	}
	return result
}

// GenerateMin collapses this requirement and a matching capability into the
// smallest count that satisfies both. It fails with NotSupportedError when
// Check would not pass.
func (r IntRange) GenerateMin(capability CountSpace) (int, error) {
	if check := r.Check(capability); !check.OK() {
		return 0, notSupported("get min value", check)
	}
	switch capability.kind {
	case countExact:
		return capability.exact, nil
	case countRange:
		if r.Min < capability.rng.Min {
			return capability.rng.Min, nil
		}
		return r.Min, nil
	default:
		// Alternatives: the cheapest value across all matching ranges.
		result := r.upperValue()
		for _, item := range capability.alts {
			if !r.Check(RangeCount(item)).OK() {
				continue
			}
			if min, err := r.GenerateMin(RangeCount(item)); err == nil && min < result {
				result = min
			}
		}
		return result, nil
	}
}

// Intersect narrows this requirement by a matching capability, keeping the
// tightest bounds of both sides.
func (r IntRange) Intersect(capability CountSpace) (CountSpace, error) {
	if check := r.Check(capability); !check.OK() {
		return CountSpace{}, notSupported("get intersect", check)
	}
	switch capability.kind {
	case countExact:
		return ExactCount(capability.exact), nil
	case countRange:
		c := capability.rng
		out := r
		if r.Min < c.Min {
			out.Min = c.Min
		}
		if r.Max > c.Max {
			out.Max = c.Max
			out.MaxInclusive = c.MaxInclusive
		} else if r.Max == c.Max {
			out.MaxInclusive = r.MaxInclusive && c.MaxInclusive
		}
		return RangeCount(out), nil
	default:
		return CountSpace{}, fmt.Errorf(
			"range intersect isn't supported against capability %s", capability)
	}
}
