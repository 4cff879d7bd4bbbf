package values

import (
	"reflect"
	"regexp"
	"time"
)

// Kind is the category that a value falls into for the purposes of assertions.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindRegExp
	KindFunction
	KindArray
	KindObject
	// KindOther covers values that are neither primitives nor objects, such as channels and
	// complex numbers. They are only ever equal to themselves.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindRegExp:
		return "regexp"
	case KindFunction:
		return "function"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "other"
	}
}

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

// Undefined represents the absence of a value, as distinct from nil (null).
var Undefined = UndefinedValue{} //nolint:gochecknoglobals

func (UndefinedValue) String() string { return "undefined" }

// KindOf returns the Kind of a value.
func KindOf(value any) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case UndefinedValue:
		return KindUndefined
	case time.Time:
		return KindDate
	case *regexp.Regexp:
		if v == nil {
			return KindNull
		}
		return KindRegExp
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindFunction
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindObject
	case reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return KindNull
		}
		return KindOther
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map, reflect.Struct:
		return KindObject
	default:
		return KindOther
	}
}

func IsUndefined(value any) bool { return KindOf(value) == KindUndefined }

func IsNull(value any) bool { return KindOf(value) == KindNull }

func IsString(value any) bool { return KindOf(value) == KindString }

func IsDate(value any) bool { return KindOf(value) == KindDate }

func IsRegExp(value any) bool { return KindOf(value) == KindRegExp }

func IsFunction(value any) bool { return KindOf(value) == KindFunction }

func IsArray(value any) bool { return KindOf(value) == KindArray }

// IsPrimitive returns true for undefined, null, booleans, numbers, and strings.
func IsPrimitive(value any) bool {
	return isPrimitiveKind(KindOf(value))
}

// IsObject returns true for values that have enumerable properties: objects and arrays, and
// also dates and regexps, which are objects that happen to have no enumerable properties.
func IsObject(value any) bool {
	switch KindOf(value) {
	case KindObject, KindArray, KindDate, KindRegExp:
		return true
	default:
		return false
	}
}

func isPrimitiveKind(k Kind) bool {
	switch k {
	case KindUndefined, KindNull, KindBoolean, KindNumber, KindString:
		return true
	default:
		return false
	}
}

func isNullish(k Kind) bool {
	return k == KindUndefined || k == KindNull
}
