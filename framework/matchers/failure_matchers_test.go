package matchers

import (
	"testing"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework/opt"
	"github.com/launchdarkly/assert-harness/values"
)

func TestFailureProperties(t *testing.T) {
	failure := assert.NewAssertionErrorFrom(assert.Details{
		Message:  "m",
		Actual:   opt.Some[any](1),
		Operator: opt.Some("=="),
	})

	assertPasses(t, failure, FailureMessage().Should(StrictEqual("m")))
	assertPasses(t, failure, FailureOperator().Should(StrictEqual("==")))
	assertPasses(t, failure, FailureActual().Should(StrictEqual(1)))
	assertPasses(t, failure, FailureExpected().Should(OfKind(values.KindUndefined)))

	pass, desc := FailureActual().Should(StrictEqual(2)).Test(failure)
	if pass || desc == "" {
		t.Errorf("expected failure with a description, got %t %q", pass, desc)
	}
}

func TestFailurePropertyOfOtherValue(t *testing.T) {
	assertFails(t, "m", FailureMessage().Should(StrictEqual("m")),
		"expected: value of type *assert.AssertionError, was string\n"+`actual value was: "m"`)
}
