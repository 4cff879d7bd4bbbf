package matchers

import (
	"fmt"
	"strings"
)

// Not passes if matcher fails.
//
//	matchers.Not(matchers.OfKind(values.KindNull)).AssertWith(a, result)
func Not(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			return !matcher.test(value)
		},
		func(value interface{}, _ DescribeValueFunc) string {
			return fmt.Sprintf("not (%s)", matcher.describeFailure(value, matcher.describeValue))
		},
	).WithValueDescription(matcher.describeValue)
}

// AllOf passes if every matcher passes. Matchers are tried in order and the first failure stops
// the test, so an earlier matcher can guard a later one (OfKind before ItemsInAnyOrder, say).
// The failure description lists every matcher that fails.
func AllOf(matchers ...Matcher) Matcher {
	return combine(matchers, " and ", func(value interface{}) bool {
		for _, m := range matchers {
			if !m.test(value) {
				return false
			}
		}
		return true
	})
}

// AnyOf passes if at least one matcher passes. The failure description lists all of them.
func AnyOf(matchers ...Matcher) Matcher {
	return combine(matchers, " or ", func(value interface{}) bool {
		for _, m := range matchers {
			if m.test(value) {
				return true
			}
		}
		return false
	})
}

// combine describes a value the way the first of the matchers does.
func combine(matchers []Matcher, separator string, test TestFunc) Matcher {
	combined := New(test, func(value interface{}, _ DescribeValueFunc) string {
		return joinDescriptions(failing(matchers, value), value, separator)
	})
	if len(matchers) != 0 {
		combined = combined.WithValueDescription(matchers[0].describeValue)
	}
	return combined
}

func failing(matchers []Matcher, value interface{}) []Matcher {
	var fails []Matcher
	for _, m := range matchers {
		if !m.test(value) {
			fails = append(fails, m)
		}
	}
	return fails
}

// joinDescriptions parenthesizes each description unless there is only one.
func joinDescriptions(matchers []Matcher, value interface{}, separator string) string {
	if len(matchers) == 1 {
		return matchers[0].describeFailure(value, matchers[0].describeValue)
	}
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		parts = append(parts, "("+m.describeFailure(value, m.describeValue)+")")
	}
	return strings.Join(parts, separator)
}
