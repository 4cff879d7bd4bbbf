package assert

import (
	"reflect"
	"time"

	"github.com/launchdarkly/assert-harness/values"
)

// IsDeepEqual tests structural equivalence. The first matching rule decides:
//
//  1. Values that are values.StrictEqual are equivalent.
//  2. Two dates are equivalent if they refer to the same millisecond.
//  3. If either value is a primitive, they are equivalent if values.LooseEqual.
//  4. If neither value is an object, they are equivalent if values.LooseEqual.
//  5. Two objects are equivalent if they have the same concrete type, the same set of keys in
//     any order (map keys, exported struct fields, or slice indices), and equivalent values for
//     every key. Pointers are compared by what they point to.
//
// There is no cycle detection: comparing two distinct self-referential values recurses until
// the stack overflows. Use IsDeepEqualCycleSafe for values that may contain cycles.
func IsDeepEqual(actual, expected any) bool {
	return deepEqual(actual, expected, nil)
}

// IsDeepEqualCycleSafe is the same as IsDeepEqual, except that it remembers which pairs of
// pointers, maps, and slices are being compared. A pair that is reached again while its own
// comparison is still in progress is treated as equivalent, so cyclic values terminate.
func IsDeepEqualCycleSafe(actual, expected any) bool {
	return deepEqual(actual, expected, make(map[visit]bool))
}

type visit struct {
	a, b uintptr
	typ  reflect.Type
}

func deepEqual(actual, expected any, visited map[visit]bool) bool {
	switch {
	// 7.1
	case values.StrictEqual(actual, expected):
		return true

	// 7.2
	case values.IsDate(actual) && values.IsDate(expected):
		return actual.(time.Time).UnixMilli() == expected.(time.Time).UnixMilli()

	case values.IsPrimitive(actual) || values.IsPrimitive(expected):
		return values.LooseEqual(actual, expected)

	// 7.3
	case !values.IsObject(actual) && !values.IsObject(expected):
		return values.LooseEqual(actual, expected)

	// 7.4
	default:
		ra, rb := reflect.ValueOf(actual), reflect.ValueOf(expected)
		return ra.Type() == rb.Type() && isEquivalent(ra, rb, visited)
	}
}

func isEquivalent(a, b reflect.Value, visited map[visit]bool) bool {
	switch a.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
	}

	if visited != nil {
		switch a.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice:
			v := visit{a.Pointer(), b.Pointer(), a.Type()}
			if visited[v] {
				return true
			}
			visited[v] = true
		}
	}

	switch a.Kind() {
	case reflect.Pointer:
		return deepEqual(a.Elem().Interface(), b.Elem().Interface(), visited)

	case reflect.Slice, reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !deepEqual(a.Index(i).Interface(), b.Index(i).Interface(), visited) {
				return false
			}
		}
		return true

	case reflect.Map:
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() {
				return false
			}
			if !deepEqual(iter.Value().Interface(), bv.Interface(), visited) {
				return false
			}
		}
		return true

	case reflect.Struct:
		t := a.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if !deepEqual(a.Field(i).Interface(), b.Field(i).Interface(), visited) {
				return false
			}
		}
		return true

	default:
		return values.LooseEqual(a.Interface(), b.Interface())
	}
}
