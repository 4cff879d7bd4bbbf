package matchers

// MatcherTransform tests a value derived from the input value, such as one field of a struct.
//
//	operator := matchers.Transform("operator", func(value interface{}) interface{} {
//		return value.(*assert.AssertionError).Operator.Value()
//	})
//	operator.Should(matchers.StrictEqual("===")).AssertWith(t.Assert(), failure)
//
// On failure, the description starts with the transform's name and continues with the
// description of the matcher that was applied to the derived value, for instance
// `operator === "==="`. The input value is described with values.Source.
type MatcherTransform struct {
	name      string
	getValue  func(interface{}) interface{}
	inputType interface{}
}

// Transform creates a MatcherTransform. The name describes the derived value in failure
// messages, and getValue derives it from the input value.
func Transform(name string, getValue func(interface{}) interface{}) MatcherTransform {
	return MatcherTransform{name: name, getValue: getValue}
}

// EnsureInputValueType makes the matchers returned by Should fail, instead of calling getValue,
// if the input value does not have the same type as valueOfType.
func (mt MatcherTransform) EnsureInputValueType(valueOfType interface{}) MatcherTransform {
	mt.inputType = valueOfType
	return mt
}

// Should returns a Matcher that applies matcher to the derived value.
func (mt MatcherTransform) Should(matcher Matcher) Matcher {
	getValue := mt.getValue
	if getValue == nil {
		getValue = func(value interface{}) interface{} { return value }
	}
	return New(
		func(value interface{}) bool {
			return matcher.test(getValue(value))
		},
		func(value interface{}, _ DescribeValueFunc) string {
			derived := getValue(value)
			return mt.name + " " + matcher.describeFailure(derived, matcher.describeValue)
		},
	).EnsureType(mt.inputType).WithValueDescription(SourceDescription)
}
