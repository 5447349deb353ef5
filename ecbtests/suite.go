package ecbtests

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/framework"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

// RunTestSuite runs every test family against the API and returns the
// accumulated results. Test cases run strictly sequentially; each one is
// fully independent of the others, so the filter may cut out any subset
// without affecting the rest.
func RunTestSuite(
	client *apiclient.Client,
	data *testdef.SuiteData,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, client: client, data: data}

		t.Run("status and redirect", DoStatusTests)
		t.Run("currency sets", DoCurrencySetTests)
		t.Run("conditional fetch", DoConditionalFetchTests)
		t.Run("content negotiation", DoContentNegotiationTests)
		t.Run("observation counts", DoObservationCountTests)
		t.Run("latency", DoLatencyTests)
	})
}

// T represents a test or subtest in the suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features
// such as captured debug logging provided by the lower-level framework
// package. To make test assertions, use the assert and require packages,
// passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	client  *apiclient.Client
	data    *testdef.SuiteData
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, client: t.client, data: t.data})
	})
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Debug logs some debug output for the test. The output is passed to the
// test logger when the test finishes.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Get issues one GET request against the API, failing the test immediately
// on a transport error. Request and response details go to the test's debug
// log.
func (t *T) Get(p apiclient.Params) *apiclient.Response {
	resp, err := t.client.Get(p, t.context.DebugLogger())
	require.NoError(t, err)
	return resp
}

// assertRedirectedToSecure checks that a plain-HTTP request ended up, after
// exactly one redirect hop, at a secure URL.
func assertRedirectedToSecure(t *T, resp *apiclient.Response) {
	assert.True(t, strings.HasPrefix(resp.FinalURL, "https://"),
		"expected the request to be redirected to a secure URL, but it resolved to %s", resp.FinalURL)
	assert.Equal(t, 1, resp.Redirects, "expected exactly one redirect hop")
}
