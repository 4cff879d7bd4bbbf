package matchers

import (
	"fmt"
	"reflect"

	"github.com/launchdarkly/assert-harness/values"
)

// ItemsInAnyOrder tests an array value (a slice or Go array). It passes if the array has exactly
// as many items as there are matchers, and each matcher matches at least one item.
//
//	matchers.ItemsInAnyOrder(matchers.LooseEqual(2), matchers.LooseEqual("6")).Test([]int{6, 2}) // pass
func ItemsInAnyOrder(matchers ...Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			if !values.IsArray(value) {
				return false
			}
			items := reflect.ValueOf(value)
			if items.Len() != len(matchers) {
				return false
			}
			for _, m := range matchers {
				if !anyItemMatches(items, m) {
					return false
				}
			}
			return true
		},
		func(value interface{}, _ DescribeValueFunc) string {
			if !values.IsArray(value) {
				return fmt.Sprintf("an array (was %s)", values.KindOf(value))
			}
			items := reflect.ValueOf(value)
			if items.Len() != len(matchers) {
				return fmt.Sprintf("should have %d item(s) (had %d)", len(matchers), items.Len())
			}
			var missing []Matcher
			for _, m := range matchers {
				if !anyItemMatches(items, m) {
					missing = append(missing, m)
				}
			}
			return "an item for each of: " + joinDescriptions(missing, value, ", ")
		},
	).WithValueDescription(SourceDescription)
}

func anyItemMatches(items reflect.Value, m Matcher) bool {
	for i := 0; i < items.Len(); i++ {
		if m.test(items.Index(i).Interface()) {
			return true
		}
	}
	return false
}
