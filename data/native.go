package data

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/launchdarkly/assert-harness/values"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Record is the Go type of a "$record" special form. It is a map type distinct from
// map[string]interface{}, so that case files can describe values of two different types
// with the same keys.
type Record map[string]interface{}

// ToNative converts a JSON value from a case file into the Go value that is passed to an assertion.
//
// Null becomes nil, booleans and strings become bool and string, every number becomes a float64,
// arrays become []interface{}, and objects become map[string]interface{}. An object with a single
// property whose name starts with "$" is a special form instead:
//
//	{"$undefined": true}       values.Undefined
//	{"$int": 3}                int(3)
//	{"$number": "NaN"}         NaN, "Infinity", or "-Infinity"
//	{"$date": 1000}            time.UnixMilli(1000); an RFC 3339 string is also accepted
//	{"$regexp": "^a+$"}        *regexp.Regexp
//	{"$record": {"a": 1}}      Record{"a": 1.0}
func ToNative(v ldvalue.Value) (interface{}, error) {
	switch v.Type() {
	case ldvalue.NullType:
		return nil, nil
	case ldvalue.BoolType:
		return v.BoolValue(), nil
	case ldvalue.NumberType:
		return v.Float64Value(), nil
	case ldvalue.StringType:
		return v.StringValue(), nil
	case ldvalue.ArrayType:
		items := v.AsValueArray().AsSlice()
		ret := make([]interface{}, 0, len(items))
		for i, item := range items {
			n, err := ToNative(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			ret = append(ret, n)
		}
		return ret, nil
	case ldvalue.ObjectType:
		props := v.AsValueMap().AsMap()
		if len(props) == 1 {
			for name, inner := range props {
				if strings.HasPrefix(name, "$") {
					return specialForm(name, inner)
				}
			}
		}
		return nativeMap(props)
	default:
		return nil, fmt.Errorf("unsupported JSON value type %s", v.Type())
	}
}

func nativeMap(props map[string]ldvalue.Value) (map[string]interface{}, error) {
	ret := make(map[string]interface{}, len(props))
	for name, inner := range props {
		n, err := ToNative(inner)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ret[name] = n
	}
	return ret, nil
}

func specialForm(name string, v ldvalue.Value) (interface{}, error) {
	switch name {
	case "$undefined":
		return values.Undefined, nil

	case "$int":
		if !v.IsInt() {
			return nil, fmt.Errorf("$int requires an integer, got %s", v.JSONString())
		}
		return v.IntValue(), nil

	case "$number":
		switch v.StringValue() {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		default:
			return nil, fmt.Errorf("$number must be NaN, Infinity, or -Infinity, got %s", v.JSONString())
		}

	case "$date":
		switch {
		case v.IsNumber():
			return time.UnixMilli(int64(v.Float64Value())), nil
		case v.IsString():
			t, err := time.Parse(time.RFC3339Nano, v.StringValue())
			if err != nil {
				return nil, fmt.Errorf("$date: %w", err)
			}
			return t, nil
		default:
			return nil, fmt.Errorf("$date requires a number or a string, got %s", v.JSONString())
		}

	case "$regexp":
		if !v.IsString() {
			return nil, fmt.Errorf("$regexp requires a string, got %s", v.JSONString())
		}
		rx, err := regexp.Compile(v.StringValue())
		if err != nil {
			return nil, fmt.Errorf("$regexp: %w", err)
		}
		return rx, nil

	case "$record":
		if v.Type() != ldvalue.ObjectType {
			return nil, fmt.Errorf("$record requires an object, got %s", v.JSONString())
		}
		m, err := nativeMap(v.AsValueMap().AsMap())
		if err != nil {
			return nil, err
		}
		return Record(m), nil

	default:
		return nil, fmt.Errorf("unknown special form %q", name)
	}
}
