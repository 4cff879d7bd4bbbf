package ldtest

import (
	"errors"
	"testing"

	a "github.com/launchdarkly/assert-harness/assert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	config := TestConfiguration{
		Context: myContextValue,
	}
	_ = Run(config, func(ldt *T) {
		assert.Equal(t, myContextValue, ldt.Context())

		ldt.Run("subtest", func(ldt1 *T) {
			assert.Equal(t, myContextValue, ldt1.Context())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("", func(ldt *T) {
			executed1 = true
			ldt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("", func(ldt *T) {
			executed1 = true
			ldt.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				// this test passes
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				// this test passes
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 0)

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				// this test passes
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.Errorf("failed because %s", "reasons")
				ldt2.Errorf("and failed some more")
			})
			ldt0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				ldt1.Skip()
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Nil(t, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(ldt *T) {
		ldt.Run("a", func(ldt0 *T) {
			ldt0.Run("sub1a", func(ldt1 *T) {})
			ldt0.Run("sub2a", func(ldt1 *T) {})
		})
		ldt.Run("b", func(ldt0 *T) {
			ldt0.Run("sub1b", func(ldt1 *T) {})
			ldt0.Run("sub2b", func(ldt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestTestScopeAssertionsArePassesAndFailures(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("passing", func(ldt1 *T) {
			ldt1.Assert().Equal(1, "1", "loosely equal")
			ldt1.Assert().OK(true)
		})
		ldt.Run("failing", func(ldt1 *T) {
			ldt1.Assert().StrictEqual(1, "1", "strictly equal")
			ldt1.Assert().OK(true, "keeps going after a failure")
		})
	})

	assert.False(t, result.OK())
	require.Len(t, result.Tests, 3)
	assert.Equal(t, 2, result.Tests[0].Passes)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"failing"}, result.Tests[1].TestID)
	assert.Equal(t, 1, result.Tests[1].Passes)
	require.Len(t, result.Tests[1].Errors, 1)
	var failure *a.AssertionError
	require.True(t, errors.As(result.Tests[1].Errors[0], &failure))
	assert.Equal(t, "strictly equal", failure.Message)
	for _, f := range failure.Stacktrace {
		assert.NotEqual(t, currentPackage, f.Package)
	}
	assert.Equal(t, 3, result.Passes())
}

func TestTestScopeReportsPanicAsException(t *testing.T) {
	logger := &recordingTestLogger{}
	result := Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("panics", func(ldt1 *T) {
			panic("boom")
		})
	})

	require.Len(t, result.Failures, 1)
	require.Len(t, result.Failures[0].Errors, 1)
	var pe PanicError
	require.True(t, errors.As(result.Failures[0].Errors[0], &pe))
	assert.Equal(t, "boom", pe.Value)
	assert.Equal(t, []string{"started panics", "error panics", "finished panics"}, logger.events)
}

func TestTestScopeUsesAssertOptions(t *testing.T) {
	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic
	other := map[string]interface{}{}
	other["self"] = other

	result := Run(TestConfiguration{AssertOptions: []a.Option{a.WithCycleDetection()}}, func(ldt *T) {
		ldt.Run("cycles", func(ldt1 *T) {
			ldt1.Assert().DeepEqual(cyclic, other)
		})
	})
	assert.True(t, result.OK())
}

func TestTestScopeNonCriticalFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("known issue", func(ldt1 *T) {
			ldt1.NonCritical("not fixed yet")
			ldt1.Assert().OK(false)
		})
	})
	assert.True(t, result.OK())
	require.Len(t, result.NonCriticalFailures, 1)
	assert.Equal(t, "not fixed yet", result.NonCriticalFailures[0].Explanation)
}
