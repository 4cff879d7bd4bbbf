package main

import (
	"bufio"
	"context"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework"
	"github.com/launchdarkly/assert-harness/framework/ldtest"
	"github.com/launchdarkly/assert-harness/monitor"
	"github.com/launchdarkly/assert-harness/recorder"
	"github.com/launchdarkly/assert-harness/suites"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("assert-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*ldtest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	testLoggers := []ldtest.TestLogger{
		ldtest.ConsoleTestLogger{
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
			ShowPasses:           params.showPasses,
		},
	}
	if params.jUnitFile != "" {
		testLoggers = append(testLoggers,
			ldtest.NewJUnitTestLogger(params.jUnitFile, "assert-harness", params.filters))
	}
	if params.monitorPort != 0 {
		stream := monitor.NewEventStream(framework.LoggerWithPrefix(mainDebugLogger, "[monitor] "))
		server, err := monitor.Start(params.monitorPort, stream, mainDebugLogger)
		if err != nil {
			return nil, err
		}
		defer func() {
			stream.Close()
			_ = server.Close()
		}()
		fmt.Printf("Streaming test events at http://localhost:%d/events\n", params.monitorPort)
		testLoggers = append(testLoggers, stream)
	}
	testLogger := &ldtest.MultiTestLogger{Loggers: testLoggers}

	var recorders recorder.MultiRecorder
	if params.recordFailures != "" {
		recorders = append(recorders, recorder.FileRecorder{Path: params.recordFailures})
	}
	if params.recordFailuresRedis != "" {
		redisRecorder := recorder.NewRedisRecorder(params.recordFailuresRedis)
		defer func() { _ = redisRecorder.Close() }()
		recorders = append(recorders, redisRecorder)
	}

	fmt.Println()
	ldtest.PrintFilterDescription(params.filters)

	var options []assert.Option
	if params.cycleDetection {
		options = append(options, assert.WithCycleDetection())
	}
	results := suites.RunAssertionSuite(params.filters, testLogger, options...)

	fmt.Println()
	if err := testLogger.EndLog(results); err != nil {
		return nil, fmt.Errorf("error writing log: %w", err)
	}

	if err := recorders.RecordFailures(context.Background(), results); err != nil {
		return nil, err
	}

	return &results, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}
