package paramtest

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spectralworks/testkit/framework"
)

var consoleTestErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleTestFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals
var allTestsPassedColor = color.New(color.FgGreen)                 //nolint:gochecknoglobals

// TestLogger receives status information about each test scope as a run
// progresses.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                        {}
func (n nullTestLogger) TestError(TestID, error)                                   {}
func (n nullTestLogger) TestFinished(TestID, TestResult, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                                {}

// ConsoleTestLogger prints progress and failures, using color when the
// terminal supports it. Output defaults to standard output if not set.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	Output               io.Writer
}

func (c ConsoleTestLogger) writer() io.Writer {
	if c.Output != nil {
		return c.Output
	}
	return color.Output
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.writer(), "[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = consoleTestErrorColor.Fprintf(c.writer(), "  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	if result.Failed() {
		_, _ = consoleTestFailedColor.Fprintf(c.writer(), "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((result.Failed() && c.DebugOutputOnFailure) || (!result.Failed() && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Fprintln(c.writer(), debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		_, _ = consoleTestSkippedColor.Fprintf(c.writer(), "  SKIPPED: %s\n", id)
	} else {
		_, _ = consoleTestSkippedColor.Fprintf(c.writer(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of the run to the console.
func PrintResults(results Results) {
	fprintResults(color.Output, color.Error, results)
}

func fprintResults(stdout, stderr io.Writer, results Results) {
	if results.OK() {
		_, _ = allTestsPassedColor.Fprintln(stdout, "All tests passed")
	} else {
		_, _ = consoleTestFailedColor.Fprintf(stderr, "FAILED TESTS (%d):\n", len(results.Failures))
		for _, f := range results.Failures {
			_, _ = consoleTestFailedColor.Fprintf(stderr, "  * %s\n", f.TestID)
		}
	}
}
