package framework

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal interface for freeform debug output from test logic.
type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one timestamped line of debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the accumulated debug output of one test scope.
type CapturedOutput []CapturedMessage

// CapturingLogger records all output written to it instead of printing. While
// a child logger is attached, new output is routed to the children rather than
// kept locally; each child starts with a copy of what the parent had already
// captured. See paramtest.(*T).DebugLogger for how scopes use this.
type CapturingLogger struct {
	messages []CapturedMessage
	children []*CapturingLogger
	lock     sync.Mutex
}

func (l *CapturingLogger) Println(args ...interface{}) {
	// Sprintln appends a newline that we don't want in a captured message
	text := strings.TrimRight(fmt.Sprintln(args...), "\r\n")
	l.capture(CapturedMessage{Time: time.Now(), Message: text})
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.capture(CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

func (l *CapturingLogger) capture(m CapturedMessage) {
	var routed []*CapturingLogger
	l.lock.Lock()
	if len(l.children) == 0 {
		l.messages = append(l.messages, m)
	} else {
		routed = append([]*CapturingLogger(nil), l.children...)
	}
	l.lock.Unlock()
	for _, child := range routed {
		child.capture(m)
	}
}

// Output returns a copy of everything captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.messages...)
	l.lock.Unlock()
	return ret
}

// AddChildLogger attaches a child scope's logger. The child inherits whatever
// the parent has captured so far.
func (l *CapturingLogger) AddChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	l.children = append(l.children, child)
	inherited := append([]CapturedMessage(nil), l.messages...)
	l.lock.Unlock()
	child.lock.Lock()
	child.messages = append(inherited, child.messages...)
	child.lock.Unlock()
}

// RemoveChildLogger detaches a child previously added with AddChildLogger.
func (l *CapturingLogger) RemoveChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	for i, c := range l.children {
		if c == child {
			l.children = append(l.children[0:i], l.children[i+1:]...)
			break
		}
	}
	l.lock.Unlock()
}

// ToString renders the captured output as lines prefixed with the given string
// and a timestamp.
func (output CapturedOutput) ToString(prefix string) string {
	ret := ""
	for _, m := range output {
		if ret != "" {
			ret += "\n"
		}
		ret += fmt.Sprintf("%s[%s] %s", prefix, m.Time.Format(timestampFormat), m.Message)
	}
	return ret
}
