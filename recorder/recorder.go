package recorder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/launchdarkly/assert-harness/framework/ldtest"
)

// FailureRecorder stores the failures of a test run. Each call replaces whatever was recorded
// before.
type FailureRecorder interface {
	RecordFailures(ctx context.Context, results ldtest.Results) error
}

// FileRecorder writes one failed test ID per line, in the order the tests ran. The file has the
// format expected by -skip-file. Non-critical failures are not written.
type FileRecorder struct {
	Path string
}

func (f FileRecorder) RecordFailures(_ context.Context, results ldtest.Results) error {
	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %w", err)
	}
	for _, test := range results.Failures {
		if _, err := fmt.Fprintln(file, test.TestID); err != nil {
			_ = file.Close()
			return fmt.Errorf("cannot write suppression file: %w", err)
		}
	}
	return file.Close()
}

// MultiRecorder records to each of its recorders in turn, stopping at the first error.
type MultiRecorder []FailureRecorder

func (m MultiRecorder) RecordFailures(ctx context.Context, results ldtest.Results) error {
	for _, r := range m {
		if err := r.RecordFailures(ctx, results); err != nil {
			return err
		}
	}
	return nil
}

func describeErrors(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "\n")
}
