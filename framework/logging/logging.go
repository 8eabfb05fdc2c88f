// Package logging provides the process-wide leveled logging facility used by
// library code under test and by the logcapture assertions. Loggers form a
// dotted-name hierarchy ("acquisition.detector" is a child of "acquisition");
// each logger has a configured level (NotSet means inherit from the parent),
// a propagation flag controlling whether records also flow to ancestors, and
// a list of attachable record handlers.
package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level classifies the severity of a log record. Higher values are more severe.
type Level int

const (
	LevelNotSet   Level = 0
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

// String returns the conventional upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	case LevelNotSet:
		return "NOTSET"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Record is one emitted log message.
type Record struct {
	Time       time.Time
	LoggerName string
	Level      Level
	Message    string
}

// Handler receives records from a logger it is attached to.
type Handler interface {
	Handle(Record)
}

// Logger is a node in the logger hierarchy. Loggers are obtained with Get and
// shared process-wide; use the methods to adjust level, propagation, and
// handlers.
type Logger struct {
	name   string
	parent *Logger

	mu        sync.Mutex
	level     Level
	propagate bool
	handlers  []Handler
}

var (
	registryMu sync.Mutex
	registry   = map[string]*Logger{}
	root       = &Logger{name: "root", level: LevelWarning, propagate: false}
)

// Root returns the root logger. Its default level is Warning, matching the
// usual ambient configuration of a non-verbose test run.
func Root() *Logger { return root }

// Get returns the logger with the given dotted name, creating it and any
// missing ancestors on first use. The empty name returns the root logger.
func Get(name string) *Logger {
	if name == "" {
		return root
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	return getLocked(name)
}

func getLocked(name string) *Logger {
	if l, ok := registry[name]; ok {
		return l
	}
	parent := root
	if i := strings.LastIndex(name, "."); i > 0 {
		parent = getLocked(name[:i])
	}
	l := &Logger{name: name, parent: parent, level: LevelNotSet, propagate: true}
	registry[name] = l
	return l
}

// Name returns the logger's full dotted name.
func (l *Logger) Name() string { return l.name }

// SetLevel sets the logger's configured level. LevelNotSet makes the logger
// inherit its effective level from its parent.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// EffectiveLevel resolves the logger's threshold, walking up the hierarchy
// past any logger whose configured level is NotSet.
func (l *Logger) EffectiveLevel() Level {
	for node := l; node != nil; node = node.parent {
		node.mu.Lock()
		level := node.level
		node.mu.Unlock()
		if level != LevelNotSet {
			return level
		}
	}
	return LevelNotSet
}

// IsEnabledFor reports whether a record of the given level would be emitted.
func (l *Logger) IsEnabledFor(level Level) bool {
	return level >= l.EffectiveLevel()
}

// SetPropagate controls whether records emitted on this logger also flow to
// ancestor loggers' handlers.
func (l *Logger) SetPropagate(propagate bool) {
	l.mu.Lock()
	l.propagate = propagate
	l.mu.Unlock()
}

// Propagates reports the current state of the propagation flag.
func (l *Logger) Propagates() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.propagate
}

// AddHandler attaches a record handler to this logger.
func (l *Logger) AddHandler(h Handler) {
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
}

// RemoveHandler detaches a handler previously attached with AddHandler.
func (l *Logger) RemoveHandler(h Handler) {
	l.mu.Lock()
	for i, existing := range l.handlers {
		if existing == h {
			l.handlers = append(l.handlers[0:i], l.handlers[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
}

// Handle dispatches an already-constructed record to this logger's handlers,
// then to ancestors while propagation is enabled. It does not apply the level
// threshold; that is the emitting methods' job.
func (l *Logger) Handle(record Record) {
	for node := l; node != nil; {
		node.mu.Lock()
		handlers := append([]Handler(nil), node.handlers...)
		propagate := node.propagate
		node.mu.Unlock()
		for _, h := range handlers {
			h.Handle(record)
		}
		if !propagate {
			break
		}
		node = node.parent
	}
}

// Logf emits a record at an arbitrary level if the logger is enabled for it.
func (l *Logger) Logf(level Level, format string, args ...interface{}) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.Handle(Record{
		Time:       time.Now(),
		LoggerName: l.name,
		Level:      level,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(LevelInfo, format, args...)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Logf(LevelWarning, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(LevelError, format, args...)
}

func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Logf(LevelCritical, format, args...)
}
