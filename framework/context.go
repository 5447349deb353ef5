package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context tracks the state of a single test or subtest. It provides the
// Errorf and FailNow methods that the testify assert and require packages
// need, so assertions can be made against it as if it were a *testing.T.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a test suite rooted at the given action and returns the
// accumulated results. The filter, if non-nil, decides which subtests run;
// a nil testLogger discards all progress output.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.runProtected(action)
	if c.failed {
		// A failure in the suite composition itself means some tests may
		// never have run, so the run as a whole must not look clean.
		result := TestResult{TestID: c.id, Errors: c.errors}
		env.results.Tests = append(env.results.Tests, result)
		env.results.Failures = append(env.results.Failures, result)
	}
	return env.results
}

// runProtected runs the action, converting FailNow/Skip panics and any
// unexpected panic into recorded state on the context.
func (c *Context) runProtected(action func(*Context)) {
	defer func() {
		r := recover()
		if r == nil || c.skipped {
			return
		}
		c.failed = true
		var addError error
		if _, ok := r.(*Context); ok {
			if len(c.errors) == 0 {
				addError = errors.New("test failed with no failure message")
			}
		} else {
			addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
		}
		if addError != nil {
			c.errors = append(c.errors, addError)
			c.env.testLogger.TestError(c.id, addError)
		}
	}()

	action(c)
}

// ID returns the identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. This is equivalent to the Run method of testing.T: the
// subtest gets its own Context, and its failure does not abort the parent.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true})
		return
	}

	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	startTime := time.Now()
	c1.runProtected(action)
	elapsed := time.Since(startTime)

	result := TestResult{TestID: id, Errors: c1.errors, Skipped: c1.skipped, Elapsed: elapsed}
	c.env.results.Tests = append(c.env.results.Tests, result)
	if c1.failed {
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow marks the test as failed and exits it immediately. The methods in
// the require package call FailNow.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Skip exits the test immediately without a failure.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug logs debug output for the test. The output is passed to the test
// logger when the test finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's debug output.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
