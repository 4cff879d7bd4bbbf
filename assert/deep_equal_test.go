package assert_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/values"

	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y    int
	private string
}

type node struct {
	Value    int
	Children []*node
	Parent   *node
}

func TestIsDeepEqual(t *testing.T) {
	shared := []int{1}
	base := time.UnixMilli(1000)

	for _, p := range []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"identical slice", shared, shared, true},
		{"same millisecond", base, base.Add(500 * time.Microsecond), true},
		{"different millisecond", base, base.Add(time.Millisecond), false},
		{"date and number", base, base.UnixMilli(), false},
		{"loose primitives", 4, "4", true},
		{"null and undefined", nil, values.Undefined, true},
		{"null and object", nil, map[string]any{}, false},
		{"empty slices", []int{}, []int{}, true},
		{"nil and empty slice", []int(nil), []int{}, true},
		{"loose elements", []any{1, "2"}, []any{"1", 2}, true},
		{"different order", []int{1, 2, 3}, []int{3, 2, 1}, false},
		{"different length", []int{1, 2}, []int{1, 2, 3}, false},
		{"same keys", map[string]any{"a": 1, "b": []int{2}}, map[string]any{"b": []int{2}, "a": 1}, true},
		{"different keys", map[string]int{"a": 1}, map[string]int{"b": 1}, false},
		{"extra key", map[string]any{"a": 1}, map[string]any{"a": 1, "b": values.Undefined}, false},
		{"different map types", map[string]any{"a": "foo"}, record{"a": "foo"}, false},
		{"array and map", []any{}, map[string]any{}, false},
		{"structs", point{X: 1, Y: 2}, point{X: 1, Y: 2}, true},
		{"unexported fields ignored", point{X: 1, private: "a"}, point{X: 1, private: "b"}, true},
		{"struct fields differ", point{X: 1}, point{X: 2}, false},
		{"pointers compare targets", &point{X: 1}, &point{X: 1}, true},
		{"pointer and value", &point{X: 1}, point{X: 1}, false},
		{"regexps have no keys", regexp.MustCompile("a"), regexp.MustCompile("b"), true},
		{"nested", map[string]any{"p": []any{&point{X: 1}}}, map[string]any{"p": []any{&point{X: 1}}}, true},
	} {
		t.Run(p.name, func(t *testing.T) {
			require.Equal(t, p.expected, assert.IsDeepEqual(p.a, p.b))
			require.Equal(t, p.expected, assert.IsDeepEqual(p.b, p.a), "reversed")
			require.Equal(t, p.expected, assert.IsDeepEqualCycleSafe(p.a, p.b), "cycle-safe")
		})
	}
}

func TestIsDeepEqualCycleSafe(t *testing.T) {
	makeTree := func(leaf int) *node {
		root := &node{Value: 0}
		child := &node{Value: leaf, Parent: root}
		root.Children = []*node{child}
		return root
	}

	require.True(t, assert.IsDeepEqualCycleSafe(makeTree(1), makeTree(1)))
	require.False(t, assert.IsDeepEqualCycleSafe(makeTree(1), makeTree(2)))

	selfReferencing := func(first any) []any {
		s := make([]any, 2)
		s[0] = first
		s[1] = s
		return s
	}
	a, b, c := selfReferencing(1), selfReferencing(1), selfReferencing(2)
	require.True(t, assert.IsDeepEqualCycleSafe(a, b))
	require.False(t, assert.IsDeepEqualCycleSafe(a, c))
}

func TestIsDeepEqualCycleSafeComparesLengthsOfSharedSlices(t *testing.T) {
	a := make([]any, 2)
	a[0] = a
	b := make([]any, 2)
	b[0] = b[:1]

	require.False(t, assert.IsDeepEqualCycleSafe(a, b))
	require.False(t, assert.IsDeepEqualCycleSafe(b, a))
	require.False(t, assert.IsDeepEqual(a, b))
}

func TestIsDeepEqualIsSymmetric(t *testing.T) {
	samples := []any{
		nil, values.Undefined, 0, 1, "1", "", true, false,
		[]int{}, []int{1}, []any{"1"}, map[string]any{}, map[string]any{"0": 1}, record{},
		point{}, &point{}, time.UnixMilli(0), regexp.MustCompile("x"),
	}
	for _, x := range samples {
		for _, y := range samples {
			require.Equal(t, assert.IsDeepEqual(x, y), assert.IsDeepEqual(y, x), "%#v vs %#v", x, y)
		}
	}
}
