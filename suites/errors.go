package suites

import (
	"github.com/launchdarkly/assert-harness/assert"
)

// TypeError is raised by cases that need an error type other than the one returned by errors.New.
type TypeError struct {
	Message string
}

func (e TypeError) Error() string { return e.Message }

// RangeError is a second distinct error type, so that a type matcher can be shown to reject it.
type RangeError struct {
	Message string
}

func (e RangeError) Error() string { return e.Message }

// ErrorTypeNames are the names that a "type" matcher in a case file can use.
var ErrorTypeNames = map[string]assert.ErrorMatcher{ //nolint:gochecknoglobals
	"TypeError":  assert.TypeOf[TypeError](),
	"RangeError": assert.TypeOf[RangeError](),
	"error":      assert.TypeOf[error](),
}
