package assert

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/launchdarkly/assert-harness/values"
)

type matcherKind int

const (
	noMatcher matcherKind = iota
	patternMatcher
	typeMatcher
	messageOnly
	substringMatcher
)

// ErrorMatcher says what Throws expects the block to raise. Create one with NoMatcher, Pattern,
// MatchPattern, Type, TypeOf, or Message.
type ErrorMatcher struct {
	kind    matcherKind
	pattern *regexp.Regexp
	typ     reflect.Type
	text    string
}

// NoMatcher accepts any raised value.
func NoMatcher() ErrorMatcher { return ErrorMatcher{} }

// Pattern accepts a raised value whose message matches the regular expression.
func Pattern(pattern *regexp.Regexp) ErrorMatcher {
	return ErrorMatcher{kind: patternMatcher, pattern: pattern}
}

// MatchPattern is a shortcut for Pattern(regexp.MustCompile(expr)).
func MatchPattern(expr string) ErrorMatcher {
	return Pattern(regexp.MustCompile(expr))
}

// Type accepts a raised value that is an instance of t, as defined by values.InstanceOf.
func Type(t reflect.Type) ErrorMatcher {
	return ErrorMatcher{kind: typeMatcher, typ: t}
}

// TypeOf is a shortcut for Type with the reflect.Type of E, which may be an interface.
//
//	a.Throws(block, assert.TypeOf[*os.PathError]())
func TypeOf[E any]() ErrorMatcher {
	return Type(reflect.TypeFor[E]())
}

// Message is not a matcher but a message in the matcher position. If Throws is not also given
// an explicit message, this text becomes the assertion message and any raised value is accepted.
// If it is, the text must be contained in the raised value's message.
func Message(text string) ErrorMatcher {
	return ErrorMatcher{kind: messageOnly, text: text}
}

// resolve applies the argument shift for Message.
func (m ErrorMatcher) resolve(message string, hasMessage bool) (ErrorMatcher, string) {
	if m.kind != messageOnly {
		return m, message
	}
	if !hasMessage {
		return NoMatcher(), m.text
	}
	return ErrorMatcher{kind: substringMatcher, text: m.text}, message
}

// matches never panics. A raised value whose Error, String, or Unwrap method panics does not
// match anything but NoMatcher.
func (m ErrorMatcher) matches(raised any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	switch m.kind {
	case patternMatcher:
		text, valid := raisedMessage(raised)
		return valid && m.pattern != nil && m.pattern.MatchString(text)
	case typeMatcher:
		return values.InstanceOf(raised, m.typ)
	case substringMatcher, messageOnly:
		text, valid := raisedMessage(raised)
		return valid && strings.Contains(text, m.text)
	default:
		return true
	}
}

// IsDefined returns false for NoMatcher.
func (m ErrorMatcher) IsDefined() bool { return m.kind != noMatcher }

// Expected returns the value that a failed Throws reports as expected: the *regexp.Regexp,
// the reflect.Type, or the message text.
func (m ErrorMatcher) Expected() any {
	switch m.kind {
	case patternMatcher:
		return m.pattern
	case typeMatcher:
		return m.typ
	case messageOnly, substringMatcher:
		return m.text
	default:
		return values.Undefined
	}
}

func (m ErrorMatcher) String() string {
	if !m.IsDefined() {
		return "any value"
	}
	return values.Source(m.Expected())
}

// RaisedMessage returns the message of a value passed to panic: the Error() text of an error,
// the String() of a fmt.Stringer, a string itself, or fmt.Sprint of anything else. If that
// method panics, the result describes the panic instead.
func RaisedMessage(raised any) string {
	text, _ := raisedMessage(raised)
	return text
}

func raisedMessage(raised any) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = fmt.Sprintf("<message panicked: %v>", r), false
		}
	}()
	return messageOf(raised), true
}

func messageOf(raised any) string {
	switch r := raised.(type) {
	case error:
		return r.Error()
	case fmt.Stringer:
		return r.String()
	case string:
		return r
	default:
		return fmt.Sprint(raised)
	}
}
