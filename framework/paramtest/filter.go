package paramtest

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a rule that can determine whether to run a specific test or not.
type Filter interface {
	Match(id TestID) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(TestID) bool

func (f FilterFunc) Match(id TestID) bool { return f(id) }

// RegexFilters selects tests by requiring or excluding regex patterns over
// their IDs.
type RegexFilters struct {
	MustMatch    TestIDPatternList
	MustNotMatch TestIDPatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

// TestIDPattern is a list of regexes matched against the corresponding
// components of a TestID.
type TestIDPattern []*regexp.Regexp

func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	min := len(p)
	if min > len(id) {
		if !includeParents {
			return false
		}
		min = len(id)
	}
	for i := 0; i < min; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, c := range p {
		ss = append(ss, c.String())
	}
	return strings.Join(ss, "/")
}

// ParseTestIDPattern compiles a slash-delimited list of regexes into a
// TestIDPattern.
func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

// TestIDPatternList is a set of patterns of which any may match.
type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set parses and appends one pattern. It satisfies the flag.Value interface
// so pattern lists can be built directly from command-line options.
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}
