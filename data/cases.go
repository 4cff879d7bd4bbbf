package data

import (
	"errors"
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// AssertionCasesDir is the directory, relative to data/data-files, that holds assertion case files.
const AssertionCasesDir = "assertions"

// Operation names used in case files. Each corresponds to a method of assert.Assert.
const (
	OpOK             = "ok"
	OpEqual          = "equal"
	OpNotEqual       = "notEqual"
	OpDeepEqual      = "deepEqual"
	OpNotDeepEqual   = "notDeepEqual"
	OpStrictEqual    = "strictEqual"
	OpNotStrictEqual = "notStrictEqual"
	OpThrows         = "throws"
)

// Kinds of raised values in RaiseSpec.
const (
	RaiseError      = "error"
	RaiseTypeError  = "typeError"
	RaiseRangeError = "rangeError"
	RaiseValue      = "value"
)

// Kinds of matchers in MatcherSpec.
const (
	MatchPattern = "pattern"
	MatchType    = "type"
	MatchMessage = "message"
)

// CaseFile is the top-level structure of an assertion case file.
type CaseFile struct {
	Name  string          `json:"name"`
	Cases []AssertionCase `json:"cases"`
}

// AssertionCase describes one assertion call and the outcome it must produce. If Reported is
// set, it is the message that the logger must receive, whether the case passes or fails.
//
// Actual and Expected are decoded with ToNative, so they can use special forms such as
// {"$undefined": true}. Expected is ignored for "ok" and "throws".
type AssertionCase struct {
	Name        string                 `json:"name"`
	Operation   string                 `json:"operation"`
	Actual      ldvalue.Value          `json:"actual"`
	Expected    ldvalue.Value          `json:"expected"`
	Message     ldvalue.OptionalString `json:"message"`
	Raise       *RaiseSpec             `json:"raise"`
	Matcher     *MatcherSpec           `json:"matcher"`
	Pass        bool                   `json:"pass"`
	Reported    ldvalue.OptionalString `json:"reportedMessage"`
	Failure     *FailureSpec           `json:"failure"`
	NonCritical string                 `json:"nonCritical"`
}

// RaiseSpec describes what the block passed to Throws panics with. If a throws case has no
// RaiseSpec, the block returns normally.
type RaiseSpec struct {
	Kind    string        `json:"kind"`
	Message string        `json:"message"`
	Value   ldvalue.Value `json:"value"`
}

// MatcherSpec describes the matcher passed to Throws. If a throws case has no MatcherSpec,
// NoMatcher is used.
type MatcherSpec struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// FailureSpec describes properties that the AssertionError of a failing case must have. Only
// the properties that are set are checked.
type FailureSpec struct {
	Message        ldvalue.OptionalString `json:"message"`
	Operator       ldvalue.OptionalString `json:"operator"`
	Rendered       ldvalue.OptionalString `json:"rendered"`
	ActualAbsent   bool                   `json:"actualAbsent"`
	ExpectedAbsent bool                   `json:"expectedAbsent"`
}

// Validate checks that the case is well-formed, without running it.
func (c AssertionCase) Validate() error {
	switch c.Operation {
	case OpOK, OpEqual, OpNotEqual, OpDeepEqual, OpNotDeepEqual, OpStrictEqual, OpNotStrictEqual:
		if c.Raise != nil || c.Matcher != nil {
			return fmt.Errorf("%q case cannot have raise or matcher", c.Operation)
		}
	case OpThrows:
		if c.Raise != nil {
			switch c.Raise.Kind {
			case "", RaiseError, RaiseTypeError, RaiseRangeError, RaiseValue:
			default:
				return fmt.Errorf("unknown raise kind %q", c.Raise.Kind)
			}
		}
		if c.Matcher != nil {
			switch c.Matcher.Kind {
			case MatchPattern, MatchType, MatchMessage:
			default:
				return fmt.Errorf("unknown matcher kind %q", c.Matcher.Kind)
			}
		}
	case "":
		return errors.New("operation is required")
	default:
		return fmt.Errorf("unknown operation %q", c.Operation)
	}
	if c.Pass && c.Failure != nil {
		return errors.New("a passing case cannot have a failure description")
	}
	if _, err := ToNative(c.Actual); err != nil {
		return fmt.Errorf("actual: %w", err)
	}
	if _, err := ToNative(c.Expected); err != nil {
		return fmt.Errorf("expected: %w", err)
	}
	if c.Raise != nil {
		if _, err := ToNative(c.Raise.Value); err != nil {
			return fmt.Errorf("raise: %w", err)
		}
	}
	return nil
}
