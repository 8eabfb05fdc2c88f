package paramtest

import (
	"fmt"
	"strings"
)

// Results accumulates the outcome of every scope in a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of a single scope.
type TestResult struct {
	TestID TestID
	Errors []error
}

// Failed reports whether the scope recorded any errors.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

// OK reports whether the whole run passed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the full name of a scope: the names of each enclosing scope from
// the outside in.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with an extra component appended; the receiver is
// not modified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// TestFailure pairs a failed scope's ID with one of its errors.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
