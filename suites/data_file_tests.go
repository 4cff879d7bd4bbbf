package suites

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/assert/asserttest"
	"github.com/launchdarkly/assert-harness/data"
	"github.com/launchdarkly/assert-harness/framework/ldtest"

	"github.com/stretchr/testify/require"
)

// DoDataFileTests runs every case in the assertion case files. A parameterized file produces one
// subtest per parameter set, named after the file's name and its parameter values.
func DoDataFileTests(t *ldtest.T) {
	for _, file := range data.LoadAndParseAllTestSuites[data.CaseFile](t, data.AssertionCasesDir) {
		name := file.Value.Name + file.Source.ParamsString()
		if file.Value.Name == "" {
			name = file.Source.BaseName + file.Source.ParamsString()
		}
		t.Run(name, func(t *ldtest.T) {
			for _, c := range file.Value.Cases {
				t.Run(c.Name, func(t *ldtest.T) {
					RunAssertionCase(t, c)
				})
			}
		})
	}
}

// RunAssertionCase performs the assertion described by c against a recording logger, and then
// checks the recorded outcome.
func RunAssertionCase(t *ldtest.T, c data.AssertionCase) {
	if c.NonCritical != "" {
		t.NonCritical(c.NonCritical)
	}
	require.NoError(t, c.Validate())

	probe, rec := asserttest.NewAssert()
	require.NoError(t, InvokeCase(probe, c))

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 1, "an assertion must report exactly one outcome")
	outcome := outcomes[0]

	a := t.Assert()
	if c.Pass {
		a.StrictEqual(outcome.Kind, asserttest.Passed, "assertion passes")
	} else {
		a.StrictEqual(outcome.Kind, asserttest.Failed, "assertion fails")
	}
	if c.Reported.IsDefined() {
		a.StrictEqual(outcome.Message, c.Reported.StringValue(), "reported message")
	}
	if outcome.Kind == asserttest.Failed {
		checkFailure(a, outcome.Failure, c.Failure)
	}
}

func checkFailure(a *assert.Assert, failure *assert.AssertionError, expected *data.FailureSpec) {
	if failure == nil {
		a.Fail(assert.NewAssertionError("failure was reported without an AssertionError"))
		return
	}
	a.StrictEqual(failure.Name(), assert.AssertionErrorName, "error name")
	a.OK(len(failure.Stacktrace) != 0, "failure has a stacktrace")
	a.OK(failure.Operator.IsDefined(), "failure has an operator")
	if expected == nil {
		return
	}
	if expected.Message.IsDefined() {
		a.StrictEqual(failure.Message, expected.Message.StringValue(), "failure message")
	}
	if expected.Operator.IsDefined() {
		a.StrictEqual(failure.Operator.Value(), expected.Operator.StringValue(), "operator")
	}
	if expected.Rendered.IsDefined() {
		a.StrictEqual(failure.Error(), expected.Rendered.StringValue(), "rendered failure")
	}
	a.StrictEqual(failure.Actual.IsDefined(), !expected.ActualAbsent, "actual is present")
	a.StrictEqual(failure.Expected.IsDefined(), !expected.ExpectedAbsent, "expected is present")
}

// InvokeCase performs the assertion described by c. It returns an error only if the case itself
// is malformed; the outcome of the assertion goes to the logger of a.
func InvokeCase(a *assert.Assert, c data.AssertionCase) error {
	actual, err := data.ToNative(c.Actual)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}
	expected, err := data.ToNative(c.Expected)
	if err != nil {
		return fmt.Errorf("expected: %w", err)
	}
	var message []string
	if c.Message.IsDefined() {
		message = append(message, c.Message.StringValue())
	}

	switch c.Operation {
	case data.OpOK:
		a.OK(actual, message...)
	case data.OpEqual:
		a.Equal(actual, expected, message...)
	case data.OpNotEqual:
		a.NotEqual(actual, expected, message...)
	case data.OpDeepEqual:
		a.DeepEqual(actual, expected, message...)
	case data.OpNotDeepEqual:
		a.NotDeepEqual(actual, expected, message...)
	case data.OpStrictEqual:
		a.StrictEqual(actual, expected, message...)
	case data.OpNotStrictEqual:
		a.NotStrictEqual(actual, expected, message...)
	case data.OpThrows:
		block, err := makeRaiser(c.Raise)
		if err != nil {
			return err
		}
		matcher, err := makeErrorMatcher(c.Matcher)
		if err != nil {
			return err
		}
		a.Throws(block, matcher, message...)
	default:
		return fmt.Errorf("unknown operation %q", c.Operation)
	}
	return nil
}

func makeRaiser(spec *data.RaiseSpec) (func(), error) {
	if spec == nil {
		return func() {}, nil
	}
	var raised interface{}
	switch spec.Kind {
	case "", data.RaiseError:
		raised = errors.New(spec.Message)
	case data.RaiseTypeError:
		raised = TypeError{Message: spec.Message}
	case data.RaiseRangeError:
		raised = RangeError{Message: spec.Message}
	case data.RaiseValue:
		v, err := data.ToNative(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("raise: %w", err)
		}
		raised = v
	default:
		return nil, fmt.Errorf("unknown raise kind %q", spec.Kind)
	}
	return func() { panic(raised) }, nil
}

func makeErrorMatcher(spec *data.MatcherSpec) (assert.ErrorMatcher, error) {
	if spec == nil {
		return assert.NoMatcher(), nil
	}
	switch spec.Kind {
	case data.MatchPattern:
		rx, err := regexp.Compile(spec.Value)
		if err != nil {
			return assert.ErrorMatcher{}, fmt.Errorf("matcher: %w", err)
		}
		return assert.Pattern(rx), nil
	case data.MatchType:
		if m, ok := ErrorTypeNames[spec.Value]; ok {
			return m, nil
		}
		return assert.ErrorMatcher{}, fmt.Errorf("unknown error type %q", spec.Value)
	case data.MatchMessage:
		return assert.Message(spec.Value), nil
	default:
		return assert.ErrorMatcher{}, fmt.Errorf("unknown matcher kind %q", spec.Kind)
	}
}
