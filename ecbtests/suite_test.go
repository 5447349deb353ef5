package ecbtests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/framework"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

// These tests run the real suite logic against local mock services instead
// of the live API, so they can verify behavior - including deliberate
// failures - that would be unpredictable over the network.

func runSuite(data *testdef.SuiteData) framework.Results {
	return RunTestSuite(apiclient.New(time.Second*5), data, nil, nil)
}

func hostOf(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

// mockSeries renders one generic data series with one observation per
// period.
func mockSeries(currency, denominator string, periods ...string) string {
	var b strings.Builder
	b.WriteString(`<Series><SeriesKey>`)
	fmt.Fprintf(&b, `<Value id="CURRENCY" value="%s"/>`, currency)
	fmt.Fprintf(&b, `<Value id="CURRENCY_DENOM" value="%s"/>`, denominator)
	b.WriteString(`</SeriesKey>`)
	for i, period := range periods {
		fmt.Fprintf(&b, `<Obs><ObsDimension value="%s"/><ObsValue value="1.0%d"/></Obs>`, period, i)
	}
	b.WriteString(`</Series>`)
	return b.String()
}

// mockDataSet wraps rendered series into a minimal generic data response.
func mockDataSet(series ...string) []byte {
	return []byte(`<GenericData><DataSet>` + strings.Join(series, "") + `</DataSet></GenericData>`)
}

// mockDocument builds a response with a single series.
func mockDocument(currency, denominator string, periods ...string) []byte {
	return mockDataSet(mockSeries(currency, denominator, periods...))
}

// failureText joins every recorded failure message so tests can check why a
// deliberately failing run failed.
func failureText(results framework.Results) string {
	var b strings.Builder
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			b.WriteString(err.Error())
			b.WriteString("\n")
		}
	}
	return b.String()
}

func recentPeriods(n int) []string {
	ret := make([]string, 0, n)
	for i := n; i >= 1; i-- {
		ret = append(ret, time.Now().AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return ret
}

func TestConditionalFetchAgainstCompliantService(t *testing.T) {
	lastModified := time.Now().Add(-time.Hour).UTC()
	headers := make(http.Header)
	headers.Set("Last-Modified", lastModified.Format(http.TimeFormat))

	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithResponse(200, headers, mockDocument("USD", "EUR", "2026-08-28")),
		httphelpers.HandlerWithStatus(304),
	))

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			ConditionalFetch: []testdef.ConditionalFetchCase{
				{Protocol: "http", URL: hostOf(server)},
			},
		})
		assert.True(t, results.OK(), "failures: %+v", results.Failures)

		first := <-requestsCh
		assert.Empty(t, first.Request.Header.Get("If-Modified-Since"))

		second := <-requestsCh
		expected := lastModified.Add(ifModifiedSinceOffset).Format(http.TimeFormat)
		assert.Equal(t, expected, second.Request.Header.Get("If-Modified-Since"))
	})
}

func TestContentNegotiationRoundTrip(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "application/xml" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotAcceptable)
		}
	})

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			SupportedFormats: []testdef.MediaTypeCase{
				{Protocol: "http", MediaType: "application/xml", URL: hostOf(server)},
			},
			UnsupportedFormats: []testdef.MediaTypeCase{
				{Protocol: "http", MediaType: "application/pdf", URL: hostOf(server)},
			},
		})
		assert.True(t, results.OK(), "failures: %+v", results.Failures)
	})
}

func TestCurrencySupersetIsAFailure(t *testing.T) {
	document := mockDataSet(
		mockSeries("USD", "EUR", "2026-08-28"),
		mockSeries("GBP", "EUR", "2026-08-28"),
		mockSeries("CHF", "EUR", "2026-08-28"),
	)
	handler := httphelpers.HandlerWithResponse(200, nil, document)

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			CurrencySets: []testdef.CurrencySetCase{
				{
					Protocol:    "http",
					URL:         hostOf(server) + "/service/data/EXR/",
					Currencies:  []string{"USD", "GBP"},
					Denominator: "EUR",
				},
			},
		})
		require.False(t, results.OK(), "an extra currency in the response must fail the case")
		assert.Contains(t, failureText(results), "currency set differs")
	})
}

func TestCurrencySubsetIsAFailure(t *testing.T) {
	document := mockDataSet(mockSeries("USD", "EUR", "2026-08-28"))
	handler := httphelpers.HandlerWithResponse(200, nil, document)

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			CurrencySets: []testdef.CurrencySetCase{
				{
					Protocol:    "http",
					URL:         hostOf(server) + "/service/data/EXR/",
					Currencies:  []string{"USD", "GBP"},
					Denominator: "EUR",
				},
			},
		})
		require.False(t, results.OK(), "a missing currency in the response must fail the case")
		assert.Contains(t, failureText(results), "currency set differs")
	})
}

func TestInsecureRedirectIsAFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	httphelpers.WithServer(mux, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			Status: []testdef.StatusCase{
				{Protocol: "http", URL: hostOf(server) + "/old"},
			},
		})
		// The hop count is right, so the only complaint must be the scheme.
		require.False(t, results.OK())
		assert.Contains(t, failureText(results), "secure URL")
		assert.NotContains(t, failureText(results), "redirect hop")
	})
}

func TestObservationCountAgainstMockService(t *testing.T) {
	document := mockDocument("USD", "EUR", recentPeriods(3)...)
	handler := httphelpers.HandlerWithResponse(200, nil, document)

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			ObservationCounts: []testdef.ObservationCountCase{
				{Protocol: "http", URL: hostOf(server), Count: 3},
			},
		})
		assert.True(t, results.OK(), "failures: %+v", results.Failures)
	})
}

func TestObservationCountMismatchIsAFailure(t *testing.T) {
	document := mockDocument("USD", "EUR", recentPeriods(2)...)
	handler := httphelpers.HandlerWithResponse(200, nil, document)

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			ObservationCounts: []testdef.ObservationCountCase{
				{Protocol: "http", URL: hostOf(server), Count: 3},
			},
		})
		require.False(t, results.OK())
		require.Len(t, results.Failures, 1)
		assert.Contains(t, results.Failures[0].TestID.String(), "observation counts")
	})
}

func TestStaleObservationIsAFailure(t *testing.T) {
	periods := recentPeriods(2)
	periods = append(periods, time.Now().AddDate(0, 0, -30).Format("2006-01-02"))
	handler := httphelpers.HandlerWithResponse(200, nil, mockDocument("USD", "EUR", periods...))

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		results := runSuite(&testdef.SuiteData{
			ObservationCounts: []testdef.ObservationCountCase{
				{Protocol: "http", URL: hostOf(server), Count: 3},
			},
		})
		assert.False(t, results.OK())
	})
}

func TestLatencyFailureDoesNotAffectOtherCases(t *testing.T) {
	fastServer := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	defer fastServer.Close()
	slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond * 50)
		w.WriteHeader(200)
	}))
	defer slowServer.Close()

	results := runSuite(&testdef.SuiteData{
		Latency: []testdef.LatencyCase{
			{Protocol: "http", URL: hostOf(slowServer), MaxMillis: ldvalue.NewOptionalInt(1)},
			{Protocol: "http", URL: hostOf(fastServer), MaxMillis: ldvalue.NewOptionalInt(5000)},
		},
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].TestID.String(), hostOf(slowServer))

	var sawPassingCase bool
	for _, r := range results.Tests {
		if strings.Contains(r.TestID.String(), hostOf(fastServer)) {
			sawPassingCase = true
		}
	}
	assert.True(t, sawPassingCase, "the passing case should still have run")
}

func TestTransportErrorFailsOnlyItsOwnCase(t *testing.T) {
	deadServer := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	deadAddress := hostOf(deadServer)
	deadServer.Close()
	liveServer := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	defer liveServer.Close()

	results := runSuite(&testdef.SuiteData{
		Latency: []testdef.LatencyCase{
			{Protocol: "http", URL: deadAddress, MaxMillis: ldvalue.NewOptionalInt(5000)},
			{Protocol: "http", URL: hostOf(liveServer), MaxMillis: ldvalue.NewOptionalInt(5000)},
		},
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].TestID.String(), deadAddress)
}
