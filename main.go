package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/ecbtests"
	"github.com/fxqa/ecb-contract-tests/framework"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

const defaultDataDir = "testdata"
const defaultRequestTimeout = time.Second * 30

func main() {
	var dataDir string
	var requestTimeout time.Duration
	var filters framework.RegexFilters
	var debug bool
	var debugAll bool

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&dataDir, "data", defaultDataDir, "directory containing the test data files")
	fs.DurationVar(&requestTimeout, "timeout", defaultRequestTimeout, "timeout for each HTTP request")
	fs.Var(&filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&debugAll, "debug-all", false, "enable debug logging for all tests")

	err := fs.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	data, err := testdef.Load(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test data error: %s\n", err)
		os.Exit(1)
	}

	client := apiclient.New(requestTimeout)

	fmt.Println()
	framework.PrintFilterDescription(filters)

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: debug || debugAll,
		DebugOutputOnSuccess: debugAll,
	}

	results := ecbtests.RunTestSuite(client, data, filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}
