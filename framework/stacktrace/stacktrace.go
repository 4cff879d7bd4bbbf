// Package stacktrace captures and filters call stacks for failure reports.
package stacktrace

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame describes one entry in a captured call stack.
type Frame struct {
	FileName string
	Package  string
	Function string
	Line     int
}

func (f Frame) String() string {
	packageName := strings.TrimPrefix(f.Package, rootPackageName()+"/")
	return fmt.Sprintf("%s.%s (%s:%d)", packageName, f.Function, f.FileName, f.Line)
}

// Filter decides which frames of a stack are reported.
type Filter struct {
	// OmitPackages lists packages whose frames are left out, such as assertion internals.
	OmitPackages []string

	// OmitFunctions lists fully qualified function names that are left out; see T.Helper.
	OmitFunctions []string

	// StopAt, if set, ends the stack at the first frame for which it returns true. That frame
	// is not included.
	StopAt func(Frame) bool
}

// Capture returns the call stack of its caller, with the filter applied. Frames from the Go
// runtime are always omitted.
func Capture(filter Filter) []Frame {
	var frames []Frame
	for i := 1; ; i++ { // start at 1 because 0 would just be Capture itself
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		f := runtime.FuncForPC(pc)
		if f == nil {
			break
		}
		parts := strings.Split(file, "/")
		packageName, functionName := ParseFunctionName(f.Name())
		if packageName == "runtime" {
			continue
		}
		frames = append(frames, Frame{
			FileName: parts[len(parts)-1],
			Package:  packageName,
			Function: functionName,
			Line:     line,
		})
	}
	return filter.Apply(frames)
}

// Apply returns the frames that pass the filter. The input is not modified.
func (filter Filter) Apply(frames []Frame) []Frame {
	ret := make([]Frame, 0, len(frames))
FrameLoop:
	for _, frame := range frames {
		if filter.StopAt != nil && filter.StopAt(frame) {
			break
		}
		for _, p := range filter.OmitPackages {
			if frame.Package == p {
				continue FrameLoop
			}
		}
		for _, fn := range filter.OmitFunctions {
			if fn == frame.Package+"."+frame.Function {
				continue FrameLoop
			}
		}
		ret = append(ret, frame)
	}
	return ret
}

// Render formats frames one per line, each preceded by the given indent.
func Render(frames []Frame, indent string) string {
	lines := make([]string, 0, len(frames))
	for _, f := range frames {
		lines = append(lines, indent+f.String())
	}
	return strings.Join(lines, "\n")
}

// CallerPackage returns the package name of the function that called CallerPackage.
func CallerPackage() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "?"
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "?"
	}
	packageName, _ := ParseFunctionName(f.Name())
	return packageName
}

// ParseFunctionName splits a fully qualified function name such as
// "github.com/a/b/pkg.(*T).Method" into its package and function parts.
func ParseFunctionName(fullName string) (string, string) {
	lastSlash := strings.LastIndex(fullName, "/")
	firstDotAfterSlash := strings.Index(fullName[lastSlash+1:], ".")
	if firstDotAfterSlash < 0 {
		return fullName, ""
	}
	packageName := fullName[0 : lastSlash+firstDotAfterSlash+1]
	functionName := fullName[len(packageName)+1:]
	return packageName, functionName
}

func rootPackageName() string {
	p := CallerPackage()
	parts := strings.Split(p, "/")
	if len(parts) < 3 {
		return p
	}
	return strings.Join(parts[0:3], "/")
}
