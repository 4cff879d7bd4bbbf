package data

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/launchdarkly/assert-harness/values"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseNative(t *testing.T, jsonString string) interface{} {
	t.Helper()
	n, err := ToNative(ldvalue.Parse([]byte(jsonString)))
	require.NoError(t, err)
	return n
}

func TestToNativeJSONTypes(t *testing.T) {
	assert.Nil(t, parseNative(t, `null`))
	assert.Equal(t, true, parseNative(t, `true`))
	assert.Equal(t, 1.0, parseNative(t, `1`))
	assert.Equal(t, 1.5, parseNative(t, `1.5`))
	assert.Equal(t, "a", parseNative(t, `"a"`))
	assert.Equal(t, []interface{}{1.0, "b", nil}, parseNative(t, `[1, "b", null]`))
	assert.Equal(t, map[string]interface{}{"a": []interface{}{}}, parseNative(t, `{"a": []}`))
}

func TestToNativeSpecialForms(t *testing.T) {
	assert.Equal(t, values.Undefined, parseNative(t, `{"$undefined": true}`))
	assert.Equal(t, 3, parseNative(t, `{"$int": 3}`))
	assert.True(t, math.IsNaN(parseNative(t, `{"$number": "NaN"}`).(float64)))
	assert.Equal(t, math.Inf(-1), parseNative(t, `{"$number": "-Infinity"}`))
	assert.Equal(t, time.UnixMilli(1000), parseNative(t, `{"$date": 1000}`))
	assert.Equal(t, int64(0), parseNative(t, `{"$date": "1970-01-01T00:00:00Z"}`).(time.Time).UnixMilli())
	assert.Equal(t, "^a+$", parseNative(t, `{"$regexp": "^a+$"}`).(*regexp.Regexp).String())
	assert.Equal(t, Record{"a": 1.0}, parseNative(t, `{"$record": {"a": 1}}`))
	assert.Equal(t, []interface{}{values.Undefined}, parseNative(t, `[{"$undefined": true}]`))
}

func TestToNativeDollarPropertyAmongOthersIsOrdinary(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"$int": 1.0, "b": 2.0}, parseNative(t, `{"$int": 1, "b": 2}`))
}

func TestToNativeErrors(t *testing.T) {
	for _, s := range []string{
		`{"$int": 1.5}`,
		`{"$number": "1"}`,
		`{"$date": true}`,
		`{"$date": "yesterday"}`,
		`{"$regexp": "("}`,
		`{"$record": []}`,
		`{"$unknown": 1}`,
		`[{"$unknown": 1}]`,
		`{"a": {"$unknown": 1}}`,
	} {
		_, err := ToNative(ldvalue.Parse([]byte(s)))
		assert.Error(t, err, "input: %s", s)
	}
}

func TestAssertionCaseValidate(t *testing.T) {
	valid := AssertionCase{Operation: OpEqual, Pass: true}
	assert.NoError(t, valid.Validate())

	throws := AssertionCase{Operation: OpThrows, Raise: &RaiseSpec{Kind: RaiseTypeError}, Matcher: &MatcherSpec{Kind: MatchType}}
	assert.NoError(t, throws.Validate())

	for _, c := range []AssertionCase{
		{},
		{Operation: "approximately"},
		{Operation: OpEqual, Raise: &RaiseSpec{}},
		{Operation: OpThrows, Raise: &RaiseSpec{Kind: "explode"}},
		{Operation: OpThrows, Matcher: &MatcherSpec{Kind: "fuzzy"}},
		{Operation: OpOK, Pass: true, Failure: &FailureSpec{}},
		{Operation: OpOK, Actual: ldvalue.Parse([]byte(`{"$bad": 1}`))},
	} {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}
