package suites

import (
	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework/ldtest"
)

// RunAssertionSuite runs every conformance test and returns the results. Each test checks the
// outcomes of assertions made against its own recording logger, and reports its checks
// through the ldtest scope, so the console and JUnit output count them as assertions too.
func RunAssertionSuite(
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
	options ...assert.Option,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:        filter,
		TestLogger:    testLogger,
		AssertOptions: options,
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run("data files", DoDataFileTests)
		t.Run("aggregates", DoAggregateTests)
		t.Run("cycles", DoCycleTests)
		t.Run("throws", DoThrowsTests)
		t.Run("reporting", DoReportingTests)
		t.Run("matchers", DoMatcherTests)
	})
}
