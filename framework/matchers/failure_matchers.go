package matchers

import (
	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework/opt"
	"github.com/launchdarkly/assert-harness/values"
)

// These transforms take an *assert.AssertionError. A property that was not supplied to the
// error is values.Undefined, so Not(OfKind(values.KindUndefined)) tests that it is present.

func FailureMessage() MatcherTransform {
	return failureProperty("message", func(e *assert.AssertionError) interface{} { return e.Message })
}

func FailureOperator() MatcherTransform {
	return failureProperty("operator", func(e *assert.AssertionError) interface{} { return orUndefined(e.Operator) })
}

func FailureActual() MatcherTransform {
	return failureProperty("actual", func(e *assert.AssertionError) interface{} { return orUndefined(e.Actual) })
}

func FailureExpected() MatcherTransform {
	return failureProperty("expected", func(e *assert.AssertionError) interface{} { return orUndefined(e.Expected) })
}

func failureProperty(name string, get func(*assert.AssertionError) interface{}) MatcherTransform {
	return Transform(name, func(value interface{}) interface{} {
		return get(value.(*assert.AssertionError))
	}).EnsureInputValueType(&assert.AssertionError{})
}

func orUndefined[V any](m opt.Maybe[V]) interface{} {
	if v, ok := m.Get(); ok {
		return v
	}
	return values.Undefined
}
