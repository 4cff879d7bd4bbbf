package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/assert-harness/framework/stacktrace/internal"
)

func TestCaptureStartsAtCaller(t *testing.T) {
	stack := Capture(Filter{})
	require.NotEmpty(t, stack)
	assert.Equal(t, CallerPackage(), stack[0].Package)
	assert.Equal(t, "TestCaptureStartsAtCaller", stack[0].Function)
	assert.Equal(t, "stacktrace_test.go", stack[0].FileName)
	for _, f := range stack {
		assert.NotEqual(t, "runtime", f.Package)
	}
}

func TestCaptureOmitsPackages(t *testing.T) {
	internal.RunAction(func() {
		stack := Capture(Filter{OmitPackages: []string{CallerPackage()}})
		require.NotEmpty(t, stack)
		assert.Equal(t, CallerPackage()+"/internal", stack[0].Package)
		assert.Equal(t, "RunAction", stack[0].Function)
	})
}

func TestCaptureOmitsHelperFunctions(t *testing.T) {
	helperFunc1(func() {
		helperFunc2(func() {
			stack := Capture(Filter{OmitFunctions: []string{CallerPackage() + ".helperFunc2"}})
			foundFunc1 := false
			for _, s := range stack {
				if s.Package == CallerPackage() && s.Function == "helperFunc1" {
					foundFunc1 = true
				} else if s.Package == CallerPackage() && s.Function == "helperFunc2" {
					require.Fail(t, "helperFunc2 should not have been in stacktrace", "stacktrace: %+v", stack)
				}
			}
			assert.True(t, foundFunc1, "helperFunc1 should have been in stacktrace but wasn't")
		})
	})
}

func TestCaptureStopsAtFrame(t *testing.T) {
	helperFunc1(func() {
		stack := Capture(Filter{StopAt: func(f Frame) bool { return f.Function == "helperFunc1" }})
		require.NotEmpty(t, stack)
		for _, f := range stack {
			assert.NotEqual(t, "helperFunc1", f.Function)
			assert.NotEqual(t, "TestCaptureStopsAtFrame", f.Function)
		}
	})
}

func TestParseFunctionName(t *testing.T) {
	p, f := ParseFunctionName("github.com/a/b/pkg.(*T).Method")
	assert.Equal(t, "github.com/a/b/pkg", p)
	assert.Equal(t, "(*T).Method", f)

	p, f = ParseFunctionName("main.main")
	assert.Equal(t, "main", p)
	assert.Equal(t, "main", f)
}

func TestRender(t *testing.T) {
	frames := []Frame{
		{FileName: "a.go", Package: "example.com/x", Function: "A", Line: 3},
		{FileName: "b.go", Package: "example.com/x", Function: "B", Line: 4},
	}
	lines := strings.Split(Render(frames, "  "), "\n")
	assert.Equal(t, []string{"  example.com/x.A (a.go:3)", "  example.com/x.B (b.go:4)"}, lines)
}

func helperFunc1(action func()) {
	action()
}

func helperFunc2(action func()) {
	action()
}
