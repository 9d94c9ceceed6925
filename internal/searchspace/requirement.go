package searchspace

import "fmt"

// Requirement is the contract every composite requirement type implements.
// Check never fails with an error: unsatisfiability is data, reported through
// the Result. GenerateMin and Intersect require a passing Check and fail with
// NotSupportedError when invoked on a non-matching pair.
type Requirement[T any] interface {
	Check(capability T) *Result
	GenerateMin(capability T) (T, error)
	Intersect(capability T) (T, error)
}

// CheckAny evaluates alternative requirements against one capability with OR
// semantics: the check passes when any alternative is satisfied. An empty
// alternatives list means no constraint and always passes.
func CheckAny[T Requirement[T]](requirements []T, capability T) *Result {
	result := NewResult()
	if len(requirements) == 0 {
		return result
	}
	for _, req := range requirements {
		if req.Check(capability).OK() {
			return result
		}
	}
	result.AddReason(fmt.Sprintf(
		"no alternative requirement is met by capability, alternatives: %d",
		len(requirements)))
	return result
}

// GenerateMinAny picks the minimal capability across alternative
// requirements. With no alternatives the capability itself is the answer.
// Among several satisfied alternatives the first-declared one wins; composite
// types carry no total order, so declaration order is the documented
// tie-break.
func GenerateMinAny[T Requirement[T]](requirements []T, capability T) (T, error) {
	if len(requirements) == 0 {
		return capability, nil
	}
	if check := CheckAny(requirements, capability); !check.OK() {
		var zero T
		return zero, notSupported("get min value", check)
	}
	for _, req := range requirements {
		if req.Check(capability).OK() {
			return req.GenerateMin(capability)
		}
	}
	// Unreachable after a passing CheckAny.
	var zero T
	return zero, &NotSupportedError{Operation: "get min value"}
}

// IntersectAny narrows the capability by the first satisfied alternative.
func IntersectAny[T Requirement[T]](requirements []T, capability T) (T, error) {
	if len(requirements) == 0 {
		return capability, nil
	}
	if check := CheckAny(requirements, capability); !check.OK() {
		var zero T
		return zero, notSupported("get intersect", check)
	}
	for _, req := range requirements {
		if req.Check(capability).OK() {
			return req.Intersect(capability)
		}
	}
	var zero T
	return zero, &NotSupportedError{Operation: "get intersect"}
}
