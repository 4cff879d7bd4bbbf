package matchers

import (
	"fmt"
	"reflect"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/values"
)

// Equal is a matcher that tests whether the input value matches the expected value according
// to reflect.DeepEqual.
func Equal(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return reflect.DeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("equal to %s", desc(expectedValue))
		},
	)
}

// LooseEqual is a matcher that tests whether the input value equals the expected value with
// coercion, as defined by values.LooseEqual.
func LooseEqual(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return values.LooseEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("== %s", desc(expectedValue))
		},
	).WithValueDescription(SourceDescription)
}

// StrictEqual is a matcher that tests whether the input value equals the expected value without
// coercion, as defined by values.StrictEqual.
func StrictEqual(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return values.StrictEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("=== %s", desc(expectedValue))
		},
	).WithValueDescription(SourceDescription)
}

// DeepEqual is a matcher that tests whether the input value is structurally equivalent to the
// expected value, as defined by assert.IsDeepEqual.
func DeepEqual(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return assert.IsDeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("deeply equal to %s", desc(expectedValue))
		},
	).WithValueDescription(SourceDescription)
}

// OfKind is a matcher that tests whether the input value is of the given values.Kind.
func OfKind(kind values.Kind) Matcher {
	return New(
		func(value interface{}) bool {
			return values.KindOf(value) == kind
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("a value of kind %s (was %s)", kind, values.KindOf(value))
		},
	).WithValueDescription(SourceDescription)
}
