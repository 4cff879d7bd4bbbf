// Package assert implements the assertion surface used by test code. An Assert is bound to a
// Logger; each assertion method evaluates one condition and reports exactly one outcome to the
// logger, either Pass with the message or Fail with an *AssertionError describing the actual
// value, the expected value, and the operator that was applied.
//
// Assertion methods never panic because of a failed condition. The only panics that can escape
// them come from evaluating exotic values, and those are left for the test runner to report
// through Assert.Error.
//
//	a := assert.New(logger)
//	a.Equal(1, "1", "loose equality coerces strings")
//	a.DeepEqual(map[string]any{"a": "foo"}, map[string]any{"a": "foo"})
//	a.Throws(func() { panic(&TypeError{}) }, assert.TypeOf[*TypeError]())
package assert
