package assert

import (
	"github.com/launchdarkly/assert-harness/framework/opt"
	"github.com/launchdarkly/assert-harness/values"
)

// Assert reports assertion outcomes to the Logger it was created with. It holds no other
// mutable state, so one Assert can be used for any number of assertions.
type Assert struct {
	log       Logger
	deepEqual func(actual, expected any) bool
}

// Option configures an Assert.
type Option func(*Assert)

// WithCycleDetection makes DeepEqual and NotDeepEqual use IsDeepEqualCycleSafe instead of
// IsDeepEqual.
func WithCycleDetection() Option {
	return func(a *Assert) { a.deepEqual = IsDeepEqualCycleSafe }
}

// New creates an Assert bound to a Logger.
func New(logger Logger, options ...Option) *Assert {
	a := &Assert{log: logger, deepEqual: IsDeepEqual}
	for _, o := range options {
		o(a)
	}
	return a
}

// Pass reports a passed assertion.
func (a *Assert) Pass(message string) {
	a.log.Pass(message)
}

// Fail reports a failed assertion.
func (a *Assert) Fail(failure *AssertionError) {
	a.log.Fail(failure)
}

// Error reports an error that happened outside of any assertion, such as a panic in the test
// body. It is forwarded to the logger as is.
func (a *Assert) Error(err error) {
	a.log.Exception(err)
}

// OK asserts that value is truthy (see values.Truthy).
func (a *Assert) OK(value any, message ...string) {
	a.check(values.Truthy(value), value, true, "==", message)
}

// Equal asserts that actual and expected are equal with coercion (see values.LooseEqual).
//
//	a.Equal(1, 1, "one is one")
func (a *Assert) Equal(actual, expected any, message ...string) {
	a.check(values.LooseEqual(actual, expected), actual, expected, "==", message)
}

// NotEqual asserts that actual and expected are not equal with coercion.
//
//	a.NotEqual(1, 2, "one is not two")
func (a *Assert) NotEqual(actual, expected any, message ...string) {
	a.check(!values.LooseEqual(actual, expected), actual, expected, "!=", message)
}

// DeepEqual asserts that actual and expected are structurally equivalent (see IsDeepEqual).
//
//	a.DeepEqual(map[string]any{"a": "foo"}, map[string]any{"a": "foo"}, "equivalent objects")
func (a *Assert) DeepEqual(actual, expected any, message ...string) {
	a.check(a.deepEqual(actual, expected), actual, expected, "deepEqual", message)
}

// NotDeepEqual asserts that actual and expected are not structurally equivalent.
func (a *Assert) NotDeepEqual(actual, expected any, message ...string) {
	a.check(!a.deepEqual(actual, expected), actual, expected, "notDeepEqual", message)
}

// StrictEqual asserts that actual and expected are equal without coercion (see
// values.StrictEqual).
//
//	a.StrictEqual(nil, nil, "nil is nil")
func (a *Assert) StrictEqual(actual, expected any, message ...string) {
	a.check(values.StrictEqual(actual, expected), actual, expected, "===", message)
}

// NotStrictEqual asserts that actual and expected are not equal without coercion.
//
//	a.NotStrictEqual(nil, values.Undefined, "nil is not undefined")
func (a *Assert) NotStrictEqual(actual, expected any, message ...string) {
	a.check(!values.StrictEqual(actual, expected), actual, expected, "!==", message)
}

// Throws asserts that block panics, and that the value it panics with satisfies the matcher.
// The panic never propagates out of Throws.
//
//	a.Throws(func() { parse(4) }, assert.Message("parse rejects numbers"))
//	a.Throws(func() { parse(4) }, assert.TypeOf[*ParseError](), "ParseError is raised")
//	a.Throws(func() { parse(4) }, assert.MatchPattern("unexpected"), "message mentions it")
//
// On failure, the reported actual value is whatever block panicked with, and is absent if
// block returned normally. The expected value is present only if a matcher was given.
func (a *Assert) Throws(block func(), matcher ErrorMatcher, message ...string) {
	matcher, msg := matcher.resolve(firstMessage(message), len(message) != 0)

	raised, threw := capturePanic(block)

	if threw && matcher.matches(raised) {
		a.Pass(msg)
		return
	}

	failure := Details{
		Message:  msg,
		Operator: opt.Some("throws"),
	}
	if threw {
		failure.Actual = opt.Some(raised)
	}
	if matcher.IsDefined() {
		failure.Expected = opt.Some(matcher.Expected())
	}
	a.Fail(NewAssertionErrorFrom(failure))
}

func capturePanic(block func()) (raised any, threw bool) {
	threw = true
	defer func() {
		if threw {
			raised = recover()
		}
	}()
	block()
	threw = false
	return nil, false
}

func (a *Assert) check(ok bool, actual, expected any, operator string, message []string) {
	msg := firstMessage(message)
	if ok {
		a.Pass(msg)
		return
	}
	a.Fail(NewAssertionErrorFrom(Details{
		Message:  msg,
		Actual:   opt.Some(actual),
		Expected: opt.Some(expected),
		Operator: opt.Some(operator),
	}))
}

func firstMessage(message []string) string {
	if len(message) == 0 {
		return ""
	}
	return message[0]
}
