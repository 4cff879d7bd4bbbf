package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/launchdarkly/assert-harness/framework/ldtest"
)

type commandParams struct {
	filters             ldtest.RegexFilters
	debug               bool
	debugAll            bool
	showPasses          bool
	cycleDetection      bool
	jUnitFile           string
	recordFailures      string
	recordFailuresRedis string
	monitorPort         int
	skipFile            string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.showPasses, "show-passes", false, "print every passed assertion")
	fs.BoolVar(&c.cycleDetection, "cycle-detection", false, "use cycle-safe deep equality in test checks")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.recordFailures, "record-failures", "", "record failed test IDs to the given file")
	fs.StringVar(&c.recordFailuresRedis, "record-failures-redis", "",
		"record failed test IDs in the Redis server at the given address")
	fs.IntVar(&c.monitorPort, "monitor-port", 0, "serve a live event stream of the test run on this port")
	fs.StringVar(&c.skipFile, "skip-file", "", "skip the tests whose IDs are listed in the given file")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.monitorPort < 0 {
		fmt.Fprintln(os.Stderr, "-monitor-port must not be negative")
		fs.Usage()
		return false
	}
	return true
}
