// Package asserttest provides an assert.Logger that records outcomes, for testing code that
// makes assertions.
package asserttest

import (
	"sync"

	"github.com/launchdarkly/assert-harness/assert"
)

// Outcome is one event received by a RecordingLogger. Exactly one of the fields other than
// Kind is meaningful, depending on Kind.
type Outcome struct {
	Kind      OutcomeKind
	Message   string
	Failure   *assert.AssertionError
	Exception error
}

type OutcomeKind string

const (
	Passed    OutcomeKind = "pass"
	Failed    OutcomeKind = "fail"
	Exception OutcomeKind = "exception"
)

// RecordingLogger is an assert.Logger that keeps every outcome it receives. It is safe for
// concurrent use.
type RecordingLogger struct {
	outcomes []Outcome
	lock     sync.Mutex
}

// NewAssert returns a RecordingLogger and an assert.Assert that reports to it.
func NewAssert(options ...assert.Option) (*assert.Assert, *RecordingLogger) {
	r := &RecordingLogger{}
	return assert.New(r, options...), r
}

func (r *RecordingLogger) Pass(message string) {
	r.add(Outcome{Kind: Passed, Message: message})
}

func (r *RecordingLogger) Fail(failure *assert.AssertionError) {
	r.add(Outcome{Kind: Failed, Message: failure.Message, Failure: failure})
}

func (r *RecordingLogger) Exception(err error) {
	r.add(Outcome{Kind: Exception, Exception: err})
}

func (r *RecordingLogger) add(o Outcome) {
	r.lock.Lock()
	r.outcomes = append(r.outcomes, o)
	r.lock.Unlock()
}

// Outcomes returns a copy of everything recorded so far.
func (r *RecordingLogger) Outcomes() []Outcome {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

// Last returns the most recent outcome, and false if there is none.
func (r *RecordingLogger) Last() (Outcome, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.outcomes) == 0 {
		return Outcome{}, false
	}
	return r.outcomes[len(r.outcomes)-1], true
}

// Reset discards everything recorded so far.
func (r *RecordingLogger) Reset() {
	r.lock.Lock()
	r.outcomes = nil
	r.lock.Unlock()
}
