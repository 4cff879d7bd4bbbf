package values

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateStringLayout is the layout used when a date is converted to a primitive for loose comparison.
const DateStringLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

var decimalLiteralRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`) //nolint:gochecknoglobals

// Truthy returns false for undefined, null, false, zero, NaN, and the empty string, and true
// for everything else. Empty slices and maps are truthy.
func Truthy(value any) bool {
	switch KindOf(value) {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return reflect.ValueOf(value).Bool()
	case KindNumber:
		f, _ := numberOf(value)
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return reflect.ValueOf(value).Len() != 0
	default:
		return true
	}
}

// StrictEqual compares without coercion. Values of different Go types are never strictly equal,
// except that all null values are equal to each other. Maps, slices, funcs, and pointers are
// compared by identity. Structs, arrays, and interface values are compared part by part with the
// same rules, so a struct holding a slice is strictly equal to a copy of itself that shares the
// slice. Other values are compared with ==.
func StrictEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka == KindNull || kb == KindNull || ka == KindUndefined || kb == KindUndefined {
		return ka == kb
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	return identical(ra, rb)
}

// identical does not call Interface, so it also works on unexported fields.
func identical(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Map, reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && identical(ea, eb)
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !identical(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !identical(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}

// LooseEqual compares two values with type coercion:
//
//   - null and undefined are equal to each other and to nothing else
//   - a boolean is converted to 1 or 0 and the comparison is repeated
//   - a number and a string are compared numerically, converting the string with StringToNumber
//   - an object compared to a number or string is first converted with ToPrimitive
//   - two non-primitive values are equal only if StrictEqual
func LooseEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	switch {
	case isNullish(ka) || isNullish(kb):
		return isNullish(ka) && isNullish(kb)
	case ka == KindBoolean:
		return LooseEqual(boolNumber(a), b)
	case kb == KindBoolean:
		return LooseEqual(a, boolNumber(b))
	case ka == KindNumber && kb == KindNumber:
		fa, _ := numberOf(a)
		fb, _ := numberOf(b)
		return fa == fb
	case ka == KindString && kb == KindString:
		return reflect.ValueOf(a).String() == reflect.ValueOf(b).String()
	case ka == KindNumber && kb == KindString:
		fa, _ := numberOf(a)
		return fa == StringToNumber(reflect.ValueOf(b).String())
	case ka == KindString && kb == KindNumber:
		return LooseEqual(b, a)
	case isPrimitiveKind(ka) && !isPrimitiveKind(kb):
		return LooseEqual(a, ToPrimitive(b))
	case !isPrimitiveKind(ka) && isPrimitiveKind(kb):
		return LooseEqual(ToPrimitive(a), b)
	default:
		return StrictEqual(a, b)
	}
}

func boolNumber(value any) float64 {
	if reflect.ValueOf(value).Bool() {
		return 1
	}
	return 0
}

func numberOf(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return math.NaN(), false
	}
}

// ToNumber converts a primitive to a float64: undefined is NaN, null is 0, booleans are 1 or 0,
// and strings are parsed with StringToNumber. Non-primitives are converted with ToPrimitive first.
func ToNumber(value any) float64 {
	switch KindOf(value) {
	case KindUndefined:
		return math.NaN()
	case KindNull:
		return 0
	case KindBoolean:
		return boolNumber(value)
	case KindNumber:
		f, _ := numberOf(value)
		return f
	case KindString:
		return StringToNumber(reflect.ValueOf(value).String())
	default:
		p := ToPrimitive(value)
		if s, ok := p.(string); ok {
			return StringToNumber(s)
		}
		return math.NaN()
	}
}

// StringToNumber parses a numeric string. Surrounding whitespace is ignored and an empty string
// is zero. Accepted forms are decimal literals with optional exponent, "Infinity" with an
// optional sign, and unsigned 0x, 0o, or 0b integer literals. Anything else is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if s[2] == '+' || s[2] == '-' {
				return math.NaN()
			}
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}
	if !decimalLiteralRegex.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// ToPrimitive converts a non-primitive value to a string, the way it would be rendered when
// compared loosely against a string or number. Primitives are returned unchanged.
//
// Errors use their Error() text and fmt.Stringer implementations their String(). Dates use
// DateStringLayout, regexps render as /source/, and arrays join their converted elements with
// commas, rendering null and undefined elements as empty strings. Other objects become
// "[object Object]" and functions become "function". An array that contains itself renders
// the inner occurrence as an empty string.
func ToPrimitive(value any) any {
	return toPrimitive(value, nil)
}

// joining holds the slices whose elements are being converted.
func toPrimitive(value any, joining map[uintptr]bool) any {
	if IsPrimitive(value) {
		return value
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(DateStringLayout)
	case *regexp.Regexp:
		return "/" + v.String() + "/"
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	switch KindOf(value) {
	case KindArray:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice && rv.Len() != 0 {
			ptr := rv.Pointer()
			if joining[ptr] {
				return ""
			}
			if joining == nil {
				joining = make(map[uintptr]bool)
			}
			joining[ptr] = true
			defer delete(joining, ptr)
		}
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if isNullish(KindOf(elem)) {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, PrimitiveString(toPrimitive(elem, joining)))
		}
		return strings.Join(parts, ",")
	case KindFunction:
		return "function"
	case KindObject:
		return "[object Object]"
	default:
		return fmt.Sprint(value)
	}
}

// PrimitiveString renders a primitive as a string: "undefined", "null", "true"/"false", numbers
// in their shortest form (see FormatNumber), and strings as themselves. Non-primitives are
// converted with ToPrimitive first.
func PrimitiveString(value any) string {
	switch KindOf(value) {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return strconv.FormatBool(reflect.ValueOf(value).Bool())
	case KindNumber:
		f, _ := numberOf(value)
		return FormatNumber(f)
	case KindString:
		return reflect.ValueOf(value).String()
	default:
		return PrimitiveString(ToPrimitive(value))
	}
}

// FormatNumber renders a float64 the way a dynamic language would print a number: integers
// have no decimal point, and exponent notation is used only for very large or small magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.Replace(s, "e-0", "e-", 1)
	s = strings.Replace(s, "e+0", "e+", 1)
	return s
}
