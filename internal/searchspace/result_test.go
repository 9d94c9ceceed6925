package searchspace

import (
	"strings"
	"testing"
)

func TestResultStartsPassing(t *testing.T) {
	r := NewResult()
	if !r.OK() {
		t.Fatal("fresh result should pass")
	}
	if len(r.Reasons()) != 0 {
		t.Fatal("fresh result should carry no reasons")
	}
}

func TestResultFailureIsPermanent(t *testing.T) {
	r := NewResult()
	r.AddReason("capability too small")
	if r.OK() {
		t.Fatal("result should fail after a reason is added")
	}

	r.Merge(NewResult(), "")
	if r.OK() {
		t.Fatal("merging a passing sub-result must not clear a failure")
	}
}

func TestResultPrefixQualifiesReasons(t *testing.T) {
	r := NewResult()
	r.AppendPrefix("diskOptions")
	r.AddFieldReason("dataDiskType", "not offered")

	reasons := r.Reasons()
	if len(reasons) != 1 {
		t.Fatalf("expected one reason, got %v", reasons)
	}
	if !strings.HasPrefix(reasons[0], "/diskOptions/dataDiskType") {
		t.Fatalf("reason not qualified by path: %q", reasons[0])
	}
}

func TestResultMergeKeepsOrderAndPropagatesFailure(t *testing.T) {
	sub1 := NewResult()
	sub1.AddReason("first failure")
	sub2 := NewResult()
	sub2.AddReason("second failure")

	r := NewResult()
	r.Merge(sub1, "coreCount")
	r.Merge(sub2, "memoryMB")

	if r.OK() {
		t.Fatal("merged failures should fail the result")
	}
	reasons := r.Reasons()
	if len(reasons) != 2 {
		t.Fatalf("expected two reasons, got %v", reasons)
	}
	if !strings.Contains(reasons[0], "first failure") || !strings.Contains(reasons[1], "second failure") {
		t.Fatalf("reason order not preserved: %v", reasons)
	}
}

func TestResultSkipsDuplicateReasons(t *testing.T) {
	r := NewResult()
	r.AddReason("capability shouldn't be none")
	r.AddReason("capability shouldn't be none")
	if len(r.Reasons()) != 1 {
		t.Fatalf("duplicate reason should be skipped, got %v", r.Reasons())
	}
}
