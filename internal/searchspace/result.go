package searchspace

import "strings"

// Result accumulates the outcome of matching a requirement against a
// capability. It starts as a pass and turns into a permanent failure once any
// reason is recorded, so nested checks can be merged without losing earlier
// failures.
type Result struct {
	failed  bool
	reasons []string
	prefix  string
}

// NewResult returns a passing result with no reasons.
func NewResult() *Result {
	return &Result{}
}

// Fail returns a failed result carrying the supplied reason.
func Fail(reason string) *Result {
	r := NewResult()
	r.AddReason(reason)
	return r
}

// OK reports whether every merged check passed.
func (r *Result) OK() bool {
	return !r.failed
}

// Reasons returns the recorded failure reasons in the order they were added.
func (r *Result) Reasons() []string {
	return append([]string(nil), r.reasons...)
}

// AppendPrefix extends the hierarchical path used to qualify reasons, joining
// segments with "/".
func (r *Result) AppendPrefix(prefix string) {
	if r.prefix != "" || prefix != "" {
		r.prefix = r.prefix + "/" + prefix
	}
}

// AddReason marks the result failed and records a reason qualified by the
// current prefix.
func (r *Result) AddReason(reason string) {
	r.addReason(reason, "")
}

// AddFieldReason marks the result failed and records a reason qualified by the
// current prefix and a field name.
func (r *Result) AddFieldReason(name, reason string) {
	r.addReason(reason, name)
}

func (r *Result) addReason(reason, name string) {
	r.failed = true

	// A reason that is already contained in a recorded one adds no new
	// information, skip it.
	for _, existing := range r.reasons {
		if strings.Contains(existing, reason) {
			return
		}
	}

	sep := ": "
	if strings.Contains(reason, ":") {
		sep = "/"
	}
	switch {
	case name != "" && r.prefix != "":
		reason = r.prefix + "/" + name + sep + reason
	case name != "":
		reason = name + sep + reason
	case r.prefix != "":
		reason = r.prefix + sep + reason
	}
	r.reasons = append(r.reasons, reason)
}

// Merge ANDs a sub-check into this result, re-qualifying the sub-result's
// reasons under the optional field name. Reason ordering follows the order
// checks were performed.
func (r *Result) Merge(sub *Result, name string) {
	if sub == nil {
		return
	}
	r.failed = r.failed || sub.failed
	for _, reason := range sub.reasons {
		r.addReason(reason, name)
	}
}
