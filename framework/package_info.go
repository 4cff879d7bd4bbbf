// Package framework contains the low-level infrastructure of the test harness that does not
// depend on what is being tested. The base package contains shared types such as Logger;
// other components are in subpackages:
//
// ldtest: a test scope similar to Go's testing.T, which accumulates passed assertions and
// failures for each test identifier, and reports them to one or more TestLoggers.
//
// stacktrace: call stack capture and filtering for failure reports.
//
// matchers: composable matchers that can report through an assertion surface.
//
// helpers: channel and polling helpers for tests of concurrent code.
//
// opt: optional values.
package framework
