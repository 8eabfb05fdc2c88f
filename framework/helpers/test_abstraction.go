package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// TestContext is a minimal interface for types like *testing.T and *paramtest.T representing a
// test that can fail. Functions can use this to avoid specific dependencies on those packages.
type TestContext interface {
	Errorf(msgFormat string, msgArgs ...interface{})
	FailNow()
}

// TestRecorder is a TestContext implementation that records failures instead
// of failing anything, for use in tests of test helpers.
type TestRecorder struct {
	Errors     []string
	Terminated bool

	// PanicOnTerminate makes FailNow panic with the TestRecorder itself, for
	// callers that need FailNow to actually stop execution.
	PanicOnTerminate bool
}

func (t *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	t.Errors = append(t.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (t *TestRecorder) FailNow() {
	t.Terminated = true
	if t.PanicOnTerminate {
		panic(t)
	}
}

// Err returns a single error summarizing all recorded failures, or nil if
// there were none.
func (t *TestRecorder) Err() error {
	if len(t.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(t.Errors, ", "))
}
