package ldtest

import (
	"github.com/launchdarkly/assert-harness/framework"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestPassed(id TestID, message string) {
	r.events = append(r.events, "passed "+id.String()+" "+message)
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	r.events = append(r.events, "finished "+id.String())
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+" "+reason)
}

func (r *recordingTestLogger) EndLog(Results) error { return nil }
