package assert

// Logger receives assertion outcomes. Implementations are provided by the test runner.
type Logger interface {
	// Pass is called once for every assertion that holds.
	Pass(message string)

	// Fail is called once for every assertion that does not hold.
	Fail(failure *AssertionError)

	// Exception is called when the code under test fails outside of any assertion.
	Exception(err error)
}
