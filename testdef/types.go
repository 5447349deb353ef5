package testdef

import (
	"fmt"
	"net/http"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// StatusCase drives the response-status and redirect checks. URL is the host
// and path without a scheme; Protocol is "http" or "https". When Status is
// omitted from the data file, 200 is expected.
type StatusCase struct {
	Protocol string              `json:"protocol"`
	URL      string              `json:"url"`
	Status   ldvalue.OptionalInt `json:"status"`
}

func (c StatusCase) Name() string {
	return c.Protocol + " " + c.URL
}

func (c StatusCase) ExpectedStatus() int {
	return c.Status.OrElse(http.StatusOK)
}

// CurrencySetCase drives the series-key OR tests: several currencies are
// requested in one key, and the response must contain exactly that set of
// currency series against the denominator.
type CurrencySetCase struct {
	Protocol    string              `json:"protocol"`
	URL         string              `json:"url"`
	Headers     map[string]string   `json:"headers,omitempty"`
	Currencies  []string            `json:"currencies"`
	Denominator string              `json:"denominator"`
	Status      ldvalue.OptionalInt `json:"status"`
}

func (c CurrencySetCase) Name() string {
	return strings.Join(c.Currencies, "+") + " against " + c.Denominator
}

func (c CurrencySetCase) ExpectedStatus() int {
	return c.Status.OrElse(http.StatusOK)
}

// ConditionalFetchCase drives the If-Modified-Since checks.
type ConditionalFetchCase struct {
	Protocol string `json:"protocol"`
	URL      string `json:"url"`
}

func (c ConditionalFetchCase) Name() string {
	return c.Protocol + " " + c.URL
}

// MediaTypeCase drives both content-negotiation families. The expected
// status defaults differ per family, so the default is supplied by the test.
type MediaTypeCase struct {
	Protocol  string              `json:"protocol,omitempty"`
	MediaType string              `json:"mediaType"`
	URL       string              `json:"url"`
	Status    ldvalue.OptionalInt `json:"status"`
}

func (c MediaTypeCase) Name() string {
	return c.MediaType
}

func (c MediaTypeCase) ExpectedStatus(familyDefault int) int {
	return c.Status.OrElse(familyDefault)
}

// ObservationCountCase drives the lastNObservations checks: exactly Count
// observations must come back, all with recent periods.
type ObservationCountCase struct {
	Protocol string            `json:"protocol,omitempty"`
	URL      string            `json:"url"`
	Headers  map[string]string `json:"headers,omitempty"`
	Count    int               `json:"count"`
}

func (c ObservationCountCase) Name() string {
	return fmt.Sprintf("last %d of %s", c.Count, c.URL)
}

// LatencyCase drives the round-trip latency checks. When MaxMillis is
// omitted, the suite's default threshold applies.
type LatencyCase struct {
	Protocol  string              `json:"protocol,omitempty"`
	URL       string              `json:"url"`
	MaxMillis ldvalue.OptionalInt `json:"maxMillis"`
}

func (c LatencyCase) Name() string {
	return c.URL
}

// ProtocolOrDefault returns the case's protocol, defaulting to https for the
// families where the data files normally leave it out.
func ProtocolOrDefault(protocol string) string {
	if protocol == "" {
		return "https"
	}
	return protocol
}
