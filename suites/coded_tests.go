package suites

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/assert/asserttest"
	"github.com/launchdarkly/assert-harness/framework/ldtest"
	"github.com/launchdarkly/assert-harness/framework/matchers"
	"github.com/launchdarkly/assert-harness/values"

	"github.com/stretchr/testify/require"
)

// Some behaviors can't be described in a case file, because they depend on Go types, pointers,
// or cycles. These tests build such values in code.

type point struct {
	X, Y  int
	label string
}

type otherPoint struct {
	X, Y int
}

type node struct {
	Value int
	Next  *node
}

type celsius float64

type parseError struct {
	Offset int
}

func (e *parseError) Error() string { return fmt.Sprintf("parse error at %d", e.Offset) }

// probe makes assertions against a fresh recording logger and returns the single outcome
// they reported.
func probe(t *ldtest.T, fn func(a *assert.Assert), options ...assert.Option) asserttest.Outcome {
	t.Helper()
	a, rec := asserttest.NewAssert(options...)
	fn(a)
	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 1, "an assertion must report exactly one outcome")
	return outcomes[0]
}

func expectPass(t *ldtest.T, fn func(a *assert.Assert), options ...assert.Option) {
	t.Helper()
	o := probe(t, fn, options...)
	t.Assert().StrictEqual(o.Kind, asserttest.Passed)
}

func expectFail(t *ldtest.T, fn func(a *assert.Assert), options ...assert.Option) *assert.AssertionError {
	t.Helper()
	o := probe(t, fn, options...)
	t.Assert().StrictEqual(o.Kind, asserttest.Failed)
	return o.Failure
}

func DoAggregateTests(t *ldtest.T) {
	t.Run("structs compare exported fields only", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.DeepEqual(point{1, 2, "a"}, point{1, 2, "b"}) })
	})

	t.Run("structs with different exported fields", func(t *ldtest.T) {
		expectFail(t, func(a *assert.Assert) { a.DeepEqual(point{1, 2, ""}, point{1, 3, ""}) })
	})

	t.Run("struct types must match", func(t *ldtest.T) {
		expectFail(t, func(a *assert.Assert) { a.DeepEqual(point{X: 1, Y: 2}, otherPoint{X: 1, Y: 2}) })
	})

	t.Run("pointers compare their targets", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.DeepEqual(&point{X: 1}, &point{X: 1}) })
	})

	t.Run("distinct pointers are not strictly equal", func(t *ldtest.T) {
		expectFail(t, func(a *assert.Assert) { a.StrictEqual(&point{}, &point{}) })
	})

	t.Run("same pointer is strictly equal", func(t *ldtest.T) {
		p := &point{}
		expectPass(t, func(a *assert.Assert) { a.StrictEqual(p, p) })
	})

	t.Run("nil pointer is null", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.StrictEqual((*point)(nil), nil) })
		expectPass(t, func(a *assert.Assert) { a.Equal((*point)(nil), values.Undefined) })
	})

	t.Run("nil slice is an empty array", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.DeepEqual([]int(nil), []int{}) })
		expectFail(t, func(a *assert.Assert) { a.DeepEqual([]int(nil), nil) })
	})

	t.Run("map element types must match", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.DeepEqual(map[string]int{"a": 1}, map[string]int{"a": 1}) })
		expectFail(t, func(a *assert.Assert) { a.DeepEqual(map[string]int{"a": 1}, map[string]float64{"a": 1}) })
	})

	t.Run("arrays and slices are different types", func(t *ldtest.T) {
		expectFail(t, func(a *assert.Assert) { a.DeepEqual([2]int{1, 2}, []int{1, 2}) })
	})

	t.Run("named numeric types", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) { a.Equal(celsius(3), 3) })
		expectFail(t, func(a *assert.Assert) { a.StrictEqual(celsius(3), 3.0) })
		expectPass(t, func(a *assert.Assert) { a.StrictEqual(celsius(3), celsius(3)) })
	})
}

func cyclicMap(name string) map[string]interface{} {
	m := map[string]interface{}{"name": name}
	m["self"] = m
	return m
}

func ring(items ...int) *node {
	var first, last *node
	for _, v := range items {
		n := &node{Value: v}
		if first == nil {
			first = n
		} else {
			last.Next = n
		}
		last = n
	}
	last.Next = first
	return first
}

func DoCycleTests(t *ldtest.T) {
	t.Run("cyclic maps", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.DeepEqual(cyclicMap("x"), cyclicMap("x"))
		}, assert.WithCycleDetection())
	})

	t.Run("cyclic maps with different contents", func(t *ldtest.T) {
		expectFail(t, func(a *assert.Assert) {
			a.DeepEqual(cyclicMap("x"), cyclicMap("y"))
		}, assert.WithCycleDetection())
	})

	t.Run("cyclic linked structures", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.DeepEqual(ring(1, 2, 3), ring(1, 2, 3))
		}, assert.WithCycleDetection())
		expectPass(t, func(a *assert.Assert) {
			a.NotDeepEqual(ring(1, 2, 3), ring(1, 2, 4))
		}, assert.WithCycleDetection())
	})

	t.Run("same cyclic value without cycle detection", func(t *ldtest.T) {
		m := cyclicMap("x")
		expectPass(t, func(a *assert.Assert) { a.DeepEqual(m, m) })
	})

	t.Run("failure rendering marks the cycle", func(t *ldtest.T) {
		failure := expectFail(t, func(a *assert.Assert) { a.StrictEqual(cyclicMap("x"), nil) })
		require.NotNil(t, failure)
		t.Assert().StrictEqual(failure.Error(), `AssertionError : null === {"name":"x","self":[Circular]}`)
	})
}

func DoThrowsTests(t *ldtest.T) {
	t.Run("pointer error type", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() { panic(&parseError{Offset: 3}) }, assert.TypeOf[*parseError]())
		})
	})

	t.Run("wrapped error", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() { panic(fmt.Errorf("reading: %w", &parseError{Offset: 3})) }, assert.TypeOf[*parseError]())
		})
	})

	t.Run("joined errors", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() { panic(errors.Join(io.EOF, TypeError{Message: "x"})) }, assert.TypeOf[TypeError]())
		})
	})

	t.Run("runtime error", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() {
				var m map[string]int
				m["a"] = 1
			}, assert.TypeOf[runtime.Error]())
		})
	})

	t.Run("nil panic is a raise", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() { panic(nil) }, assert.NoMatcher())
		})
	})

	t.Run("pattern against an error message", func(t *ldtest.T) {
		expectPass(t, func(a *assert.Assert) {
			a.Throws(func() { panic(&parseError{Offset: 12}) }, assert.MatchPattern(`at \d+$`))
		})
	})

	t.Run("raised value is the actual value of a failure", func(t *ldtest.T) {
		failure := expectFail(t, func(a *assert.Assert) {
			a.Throws(func() { panic(&parseError{Offset: 3}) }, assert.TypeOf[TypeError]())
		})
		require.NotNil(t, failure)
		t.Assert().StrictEqual(failure.Actual.IsDefined(), true)
		t.Assert().DeepEqual(failure.Actual.Value(), &parseError{Offset: 3})
	})
}

// failFromNamedFunction exists so that a failure's stacktrace has a known first frame.
func failFromNamedFunction(a *assert.Assert) {
	a.OK(false)
}

func DoReportingTests(t *ldtest.T) {
	t.Run("every assertion reports exactly once", func(t *ldtest.T) {
		a, rec := asserttest.NewAssert()
		a.OK(true)
		a.Equal(1, 2)
		a.StrictEqual("a", "a")
		a.DeepEqual([]int{1}, []int{2})
		a.NotEqual(1, 2)
		a.Throws(func() {}, assert.NoMatcher())

		var kinds []asserttest.OutcomeKind
		for _, o := range rec.Outcomes() {
			kinds = append(kinds, o.Kind)
		}
		t.Assert().DeepEqual(kinds, []asserttest.OutcomeKind{
			asserttest.Passed, asserttest.Failed, asserttest.Passed,
			asserttest.Failed, asserttest.Passed, asserttest.Failed,
		})
	})

	t.Run("failure stack starts at the caller", func(t *ldtest.T) {
		failure := expectFail(t, failFromNamedFunction)
		require.NotNil(t, failure)
		require.NotEmpty(t, failure.Stacktrace)
		t.Assert().StrictEqual(failure.Stacktrace[0].Function, "failFromNamedFunction")
		t.Assert().OK(strings.HasSuffix(failure.Stacktrace[0].Package, "/suites"), failure.Stacktrace[0].String())
	})

	t.Run("errors are reported as exceptions", func(t *ldtest.T) {
		err := errors.New("outside of any assertion")
		o := probe(t, func(a *assert.Assert) { a.Error(err) })
		t.Assert().StrictEqual(o.Kind, asserttest.Exception)
		t.Assert().StrictEqual(o.Exception, err)
	})

	t.Run("one Assert serves any number of assertions", func(t *ldtest.T) {
		a, rec := asserttest.NewAssert()
		for i := 0; i < 100; i++ {
			a.StrictEqual(i, i)
		}
		t.Assert().StrictEqual(len(rec.Outcomes()), 100)
	})
}

func DoMatcherTests(t *ldtest.T) {
	t.Run("passing matcher", func(t *ldtest.T) {
		o := probe(t, func(a *assert.Assert) {
			matchers.DeepEqual(map[string]interface{}{"a": 1}).AssertWith(a, map[string]interface{}{"a": "1"}, "equivalent")
		})
		t.Assert().StrictEqual(o.Kind, asserttest.Passed)
		t.Assert().StrictEqual(o.Message, "equivalent")
	})

	t.Run("failing matcher", func(t *ldtest.T) {
		failure := expectFail(t, func(a *assert.Assert) {
			matchers.AllOf(
				matchers.OfKind(values.KindArray),
				matchers.ItemsInAnyOrder(matchers.LooseEqual(1), matchers.LooseEqual("b")),
			).AssertWith(a, []interface{}{"b", 2})
		})
		require.NotNil(t, failure)
		matchers.AllOf(
			matchers.FailureOperator().Should(matchers.StrictEqual(matchers.MatchesOperator)),
			matchers.FailureExpected().Should(matchers.OfKind(values.KindString)),
			matchers.FailureMessage().Should(matchers.Not(matchers.StrictEqual(""))),
		).AssertWith(t.Assert(), failure, "failure describes the matcher")
	})

	t.Run("failure properties", func(t *ldtest.T) {
		present := matchers.Not(matchers.OfKind(values.KindUndefined))
		absent := matchers.OfKind(values.KindUndefined)

		failure := expectFail(t, func(a *assert.Assert) { a.Throws(func() {}, assert.NoMatcher(), "must raise") })
		require.NotNil(t, failure)
		matchers.AllOf(
			matchers.FailureMessage().Should(matchers.StrictEqual("must raise")),
			matchers.FailureOperator().Should(matchers.StrictEqual("throws")),
			matchers.FailureActual().Should(absent),
			matchers.FailureExpected().Should(absent),
		).AssertWith(t.Assert(), failure, "nothing raised")

		failure = expectFail(t, func(a *assert.Assert) { a.OK(0) })
		require.NotNil(t, failure)
		matchers.AllOf(
			matchers.FailureActual().Should(present),
			matchers.FailureExpected().Should(matchers.StrictEqual(true)),
			matchers.FailureOperator().Should(matchers.AnyOf(matchers.StrictEqual("=="), matchers.StrictEqual("==="))),
		).AssertWith(t.Assert(), failure, "ok failure")
	})
}
