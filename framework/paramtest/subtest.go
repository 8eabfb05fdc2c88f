package paramtest

import (
	"fmt"
	"strings"
)

// Param is one named parameter value of a parametric sub-test.
type Param struct {
	Key   string
	Value interface{}
}

// P is shorthand for constructing a Param.
func P(key string, value interface{}) Param {
	return Param{Key: key, Value: value}
}

// Params is an ordered list of named parameter values. The slice order is the
// order in which the parameters appear in sub-test descriptions; keys should
// be unique.
type Params []Param

// String renders the parameters as "key1=value1, key2=value2".
func (ps Params) String() string {
	var sb strings.Builder
	for i, p := range ps {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", p.Key, p.Value)
	}
	return sb.String()
}

// formatSubTest composes the display string for a parametric block. The label
// may be empty, which still produces the bracket pair.
func formatSubTest(label string, params Params) string {
	return fmt.Sprintf("[%s] (%s)", label, params)
}

// SubTestRunner abstracts how a labeled parametric block is executed within a
// test scope. Exactly one implementation is selected when the process starts;
// see (*T).SubTest for the difference between the two.
type SubTestRunner interface {
	RunSubTest(t *T, label string, params Params, action func(*T))
}

// isolatedRunner executes each parametric block as an independently reported
// child scope, so a failing block does not prevent the following blocks in
// the same test method from running.
type isolatedRunner struct{}

func (isolatedRunner) RunSubTest(t *T, label string, params Params, action func(*T)) {
	msg := formatSubTest(label, params)
	t.subTestMsg = msg
	defer func() { t.subTestMsg = "" }()
	t.Run(msg, func(child *T) {
		child.description = t.description
		child.subTestMsg = msg
		action(child)
	})
}

// inlineRunner is the degraded fallback: the block runs in the caller's own
// scope. Known limitation: if one block fails with FailNow, the remaining
// blocks in the same test method are not executed.
type inlineRunner struct{}

func (inlineRunner) RunSubTest(t *T, label string, params Params, action func(*T)) {
	t.subTestMsg = formatSubTest(label, params)
	defer func() { t.subTestMsg = "" }()
	action(t)
}

// defaultSubTestRunner is resolved once at startup. The isolated runner is
// always available here; the inline fallback remains selectable through
// Config.InlineSubTests for callers that need every block to share one scope.
var defaultSubTestRunner SubTestRunner = resolveSubTestRunner()

func resolveSubTestRunner() SubTestRunner {
	return isolatedRunner{}
}

// SubTest runs a labeled parametric block. The composed display string
// "[label] (key1=value1, key2=value2)" becomes the scope's active sub-test
// description for the duration of the block (see Description) and is cleared
// when the block exits, whether it completed or failed; an escaping failure
// is never swallowed.
func (t *T) SubTest(label string, params Params, action func(*T)) {
	runner := defaultSubTestRunner
	if t.env.config.InlineSubTests {
		runner = inlineRunner{}
	}
	runner.RunSubTest(t, label, params, action)
}

// SubTestCases runs action once per case as a parametric sub-test. Cases
// typically come from a YAML table loaded with LoadCasesFile.
func (t *T) SubTestCases(cases []Case, action func(*T, Params)) {
	for _, c := range cases {
		c := c
		t.SubTest(c.Label, c.Params, func(child *T) {
			action(child, c.Params)
		})
	}
}
