package assert

import (
	"errors"
	"fmt"

	"github.com/launchdarkly/assert-harness/framework/opt"
	"github.com/launchdarkly/assert-harness/framework/stacktrace"
	"github.com/launchdarkly/assert-harness/values"
)

// AssertionErrorName is the name tag of every AssertionError.
const AssertionErrorName = "AssertionError"

// Details are the optional parts of an AssertionError. Fields that are not set are absent
// from the resulting error, which is different from being set to nil.
type Details struct {
	Message  string
	Actual   opt.Maybe[any]
	Expected opt.Maybe[any]
	Operator opt.Maybe[string]
}

// AssertionError describes a failed assertion.
type AssertionError struct {
	Message    string
	Actual     opt.Maybe[any]
	Expected   opt.Maybe[any]
	Operator   opt.Maybe[string]
	Stacktrace []stacktrace.Frame
}

// NewAssertionError creates an AssertionError that has only a message.
func NewAssertionError(message string) *AssertionError {
	return NewAssertionErrorFrom(Details{Message: message})
}

// NewAssertionErrorFrom creates an AssertionError from structured details. The call stack is
// captured at this point, leaving out frames from this package.
func NewAssertionErrorFrom(details Details) *AssertionError {
	return &AssertionError{
		Message:    details.Message,
		Actual:     details.Actual,
		Expected:   details.Expected,
		Operator:   details.Operator,
		Stacktrace: stacktrace.Capture(stacktrace.Filter{OmitPackages: []string{thisPackage}}),
	}
}

var thisPackage = stacktrace.CallerPackage() //nolint:gochecknoglobals

// Name returns AssertionErrorName.
func (e *AssertionError) Name() string { return AssertionErrorName }

func (e *AssertionError) Error() string { return e.String() }

// String renders the error as "AssertionError : message" if there is a message, or otherwise
// as "AssertionError : expected operator actual", with both values rendered by values.Source.
func (e *AssertionError) String() string {
	if e.Message != "" {
		return e.Name() + " : " + e.Message
	}
	return fmt.Sprintf("%s : %s %s %s",
		e.Name(),
		values.Source(e.Expected.OrElse(values.Undefined)),
		e.Operator.Value(),
		values.Source(e.Actual.OrElse(values.Undefined)),
	)
}

// Stack renders the captured call stack, one frame per line.
func (e *AssertionError) Stack() string {
	return stacktrace.Render(e.Stacktrace, "")
}

// IsAssertionError returns true if err is, or wraps, an *AssertionError.
func IsAssertionError(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}
