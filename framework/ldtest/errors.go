package ldtest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework/stacktrace"
)

// ErrorWithStacktrace is a failure reported with T.Errorf, along with the stack of the test code
// that reported it.
type ErrorWithStacktrace struct {
	Message    string
	Stacktrace []stacktrace.Frame
}

func (e ErrorWithStacktrace) Error() string { return e.Message }

// PanicError is reported when a test body panics with anything other than a test scope
// termination.
type PanicError struct {
	Value interface{}
	Stack string
}

func (e PanicError) Error() string {
	return fmt.Sprintf("unexpected panic in test: %+v\n%s", e.Value, e.Stack)
}

var errorTraceInMessageRegex = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`) //nolint:gochecknoglobals

var currentPackage = stacktrace.CallerPackage() //nolint:gochecknoglobals

// transformError attaches a stacktrace to an error using our own stacktrace logic, and also
// strips out any stacktrace information that may have been added to the error message by the
// testify/assert or testify/require functions.
func transformError(err error, frames []stacktrace.Frame) error {
	message := err.Error()
	if strings.Contains(message, "Error Trace:") {
		message = strings.TrimSpace(errorTraceInMessageRegex.ReplaceAllLiteralString(message, ""))
	}
	if len(frames) == 0 {
		return errors.New(message)
	}
	return ErrorWithStacktrace{Message: message, Stacktrace: frames}
}

// FailureStacktrace returns the stacktrace attached to a reported test failure, if any.
func FailureStacktrace(err error) []stacktrace.Frame {
	var ae *assert.AssertionError
	if errors.As(err, &ae) {
		return ae.Stacktrace
	}
	var es ErrorWithStacktrace
	if errors.As(err, &es) {
		return es.Stacktrace
	}
	return nil
}

func (t *T) captureStack() []stacktrace.Frame {
	return stacktrace.Capture(t.stackFilter(false))
}

func (t *T) stackFilter(includeLDTestCode bool) stacktrace.Filter {
	filter := stacktrace.Filter{
		OmitFunctions: t.helperFns,
		StopAt: func(f stacktrace.Frame) bool {
			// ldtest.Run is always the root of the test run, no need to go further
			return f.Package == currentPackage && f.Function == "Run"
		},
	}
	if !includeLDTestCode {
		filter.OmitPackages = []string{currentPackage}
	}
	return filter
}
