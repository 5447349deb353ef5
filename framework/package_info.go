// Package framework contains the low-level test harness infrastructure that
// can be reused for different kinds of data-driven API tests.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results. Assertions from the
// testify packages can be made against it.
//
// 2. Tests can be selected or excluded with regular-expression filters that
// are set from command-line parameters.
//
// 3. Results are aggregated across the run and printed as a console summary;
// the process exit code is derived from whether any test failed.
//
// The domain-specific code that knows what is being tested - the requests to
// send and the assertions to make about the responses - lives in the
// ecbtests package, layered on top of the test context.
package framework
