package framework

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Results is the cumulative result of a full test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult describes the outcome of one test or subtest.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
	Elapsed time.Duration
}

// OK returns true if the whole run passed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test as a path of names, from the suite root down.
type TestID struct {
	Path []string
}

// Plus returns the TestID of a child with the given name. The receiver's
// path is copied, so IDs of sibling subtests never share storage.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// PrintResults writes a summary of the test run to standard output.
func PrintResults(results Results) {
	executed, skipped := 0, 0
	for _, r := range results.Tests {
		if r.Skipped {
			skipped++
		} else {
			executed++
		}
	}

	if results.OK() {
		passColor.Printf("All tests passed (%d executed", executed)
	} else {
		failColor.Printf("FAILED: %d tests (%d executed", len(results.Failures), executed)
	}
	if skipped > 0 {
		skipColor.Printf(", %d skipped", skipped)
	}
	fmt.Println(")")

	for _, f := range results.Failures {
		failColor.Printf("  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}
