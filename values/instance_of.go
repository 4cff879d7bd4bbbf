package values

import "reflect"

// InstanceOf returns true if value is assignable to target, which may be a concrete type or an
// interface type. If value is an error, its Unwrap chain (both single and multi-error forms) is
// searched as well, so a wrapped error is an instance of the type of anything it wraps.
func InstanceOf(value any, target reflect.Type) bool {
	if value == nil || target == nil {
		return false
	}
	if reflect.TypeOf(value).AssignableTo(target) {
		return true
	}
	switch err := value.(type) {
	case interface{ Unwrap() error }:
		if inner := err.Unwrap(); inner != nil {
			return InstanceOf(inner, target)
		}
	case interface{ Unwrap() []error }:
		for _, inner := range err.Unwrap() {
			if inner != nil && InstanceOf(inner, target) {
				return true
			}
		}
	}
	return false
}
