// Package logcapture asserts on the number of log messages emitted by a
// logging.Logger during a scoped region of a test. A Capture installs itself
// as a record handler on the target logger, disables propagation to ancestor
// loggers for the duration of the scope, and on exit compares the number of
// captured records per severity level against the configured expectations.
//
//	capture := logcapture.ForName("acquisition", logcapture.Expectations{
//		Error:   opt.Some(2),
//		Warning: opt.Some(0),
//	})
//	err := capture.Run(func() {
//		// code expected to emit 2 ERROR and no WARNING records
//	})
package logcapture

import (
	"fmt"

	"github.com/spectralworks/testkit/framework/helpers"
	"github.com/spectralworks/testkit/framework/logging"
	"github.com/spectralworks/testkit/framework/opt"
)

// selfLogger reports the capture's own diagnostics, such as skipped level checks.
var selfLogger = logging.Get("testkit.logcapture")

// Expectations is the expected number of captured records per severity level.
// An undefined field means "do not check this level".
type Expectations struct {
	Critical opt.Maybe[int]
	Error    opt.Maybe[int]
	Warning  opt.Maybe[int]
	Info     opt.Maybe[int]
	Debug    opt.Maybe[int]
	NotSet   opt.Maybe[int]
}

// byLevel returns the expectations paired with their levels, in the order the
// checks run: most severe first.
func (e Expectations) byLevel() []expectedCount {
	return []expectedCount{
		{logging.LevelCritical, e.Critical},
		{logging.LevelError, e.Error},
		{logging.LevelWarning, e.Warning},
		{logging.LevelInfo, e.Info},
		{logging.LevelDebug, e.Debug},
		{logging.LevelNotSet, e.NotSet},
	}
}

type expectedCount struct {
	level logging.Level
	count opt.Maybe[int]
}

// CountMismatchError is returned by End when the number of captured records
// at some level disagrees with the expectation for that level.
type CountMismatchError struct {
	Level         logging.Level
	ExpectedCount int
	ActualCount   int
}

func (e CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d %s logging messages, got %d",
		e.ExpectedCount, e.Level, e.ActualCount)
}

// Capture is a scoped log-count assertion on one logger. A Capture may be
// reused: each Start resets the captured records. It is not safe to run two
// concurrent scopes against the same logger.
type Capture struct {
	logger  *logging.Logger
	expect  Expectations
	records []logging.Record
}

// New creates a Capture targeting the given logger. A nil logger targets the
// root logger.
func New(logger *logging.Logger, expect Expectations) *Capture {
	if logger == nil {
		logger = logging.Root()
	}
	return &Capture{logger: logger, expect: expect}
}

// ForName creates a Capture targeting the logger with the given name.
func ForName(loggerName string, expect Expectations) *Capture {
	return New(logging.Get(loggerName), expect)
}

// Handle implements logging.Handler by recording the message. It is called by
// the logger while a scope is active; user code has no reason to call it.
func (c *Capture) Handle(record logging.Record) {
	c.records = append(c.records, record)
}

// Records returns the records captured since the last Start.
func (c *Capture) Records() []logging.Record {
	return append([]logging.Record(nil), c.records...)
}

// Start opens the capture scope: previously captured records are discarded,
// the Capture attaches itself as a handler, and propagation to ancestor
// loggers is disabled so the records do not reach ambient handlers while the
// scope runs.
func (c *Capture) Start() {
	c.records = nil
	c.logger.AddHandler(c)
	c.logger.SetPropagate(false)
}

// End closes the scope and validates the expectations. The handler is removed
// and propagation is re-enabled unconditionally; note that this does not
// restore a propagation flag that was already false before Start.
//
// Levels for which the logger is not currently enabled are skipped silently:
// a level filtered out by configuration would report zero records no matter
// what the code under test did, and failing on that would only punish running
// the tests at a lower verbosity.
//
// On the first mismatching level, every captured record is first re-emitted
// through the logger so it is not lost to downstream diagnostics, and a
// CountMismatchError is returned.
func (c *Capture) End() error {
	c.logger.RemoveHandler(c)
	c.logger.SetPropagate(true)

	for _, expected := range c.expect.byLevel() {
		if !expected.count.IsDefined() {
			continue
		}
		if !c.logger.IsEnabledFor(expected.level) {
			selfLogger.Debugf("logger %s disabled for level %s, cannot count messages",
				c.logger.Name(), expected.level)
			continue
		}

		count := 0
		for _, r := range c.records {
			if r.Level == expected.level {
				count++
			}
		}
		if count != expected.count.Value() {
			// resend the captured records through the logger as they were
			// masked while the scope was active, to help debug
			for _, r := range c.records {
				c.logger.Handle(r)
			}
			return CountMismatchError{
				Level:         expected.level,
				ExpectedCount: expected.count.Value(),
				ActualCount:   count,
			}
		}
	}
	return nil
}

// Run executes action inside the capture scope. End runs on every exit path;
// a panic from action propagates after the cleanup, and a count mismatch is
// returned as the error.
func (c *Capture) Run(action func()) (err error) {
	c.Start()
	defer func() {
		endErr := c.End()
		if err == nil {
			err = endErr
		}
	}()
	action()
	return nil
}

// Wrap returns a function that runs fn inside a capture scope on the given
// logger with the given expectations. It is the composition form of Run, for
// building annotated test functions without scope-management boilerplate.
func Wrap(logger *logging.Logger, expect Expectations, fn func()) func() error {
	capture := New(logger, expect)
	return func() error {
		return capture.Run(fn)
	}
}

// Verify runs action inside a capture scope and reports a count mismatch as
// a failure on t.
func Verify(t helpers.TestContext, logger *logging.Logger, expect Expectations, action func()) {
	if err := New(logger, expect).Run(action); err != nil {
		t.Errorf("%s", err)
	}
}
