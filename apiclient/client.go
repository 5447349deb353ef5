// Package apiclient is the HTTP side of the harness: it issues the GET
// requests that the test cases describe and snapshots everything the
// validators may want to look at afterward.
package apiclient

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/fxqa/ecb-contract-tests/framework"
)

// Params describes a single GET request to the API under test.
type Params struct {
	Protocol string // "http" or "https"
	URL      string // host and path, without a scheme
	Headers  map[string]string
	Query    url.Values
}

// RequestURL returns the full URL for the request.
func (p Params) RequestURL() string {
	u := p.Protocol + "://" + p.URL
	if len(p.Query) > 0 {
		u += "?" + p.Query.Encode()
	}
	return u
}

// CurlCommand renders the request as an equivalent curl command line. This
// only appears in debug output, so that a failing case can be replayed by
// hand.
func (p Params) CurlCommand() string {
	var b commandBuilder
	b.add("curl", "-s", "-L")
	for name, value := range p.Headers {
		b.add("-H", name+": "+value)
	}
	b.add(p.RequestURL())
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// Response is a snapshot of one round trip: the final status and URL after
// any redirects, the response headers, the raw body, how many redirect hops
// were followed, and the elapsed wall-clock time.
type Response struct {
	Status    int
	Headers   http.Header
	FinalURL  string
	Redirects int
	Elapsed   time.Duration
	Body      []byte
}

// Client issues GET requests against the API under test. Redirects are
// followed and counted. There are no retries: a transport failure is
// returned to the caller unchanged and fails the test case that made the
// request.
type Client struct {
	timeout time.Duration
}

// New creates a Client whose requests time out after the given duration.
func New(timeout time.Duration) *Client {
	return &Client{timeout: timeout}
}

// Get performs a single GET request, writing debug information about the
// request and response to the logger.
func (c *Client) Get(p Params, logger framework.Logger) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	req, err := http.NewRequest("GET", p.RequestURL(), nil)
	if err != nil {
		return nil, err
	}
	for name, value := range p.Headers {
		req.Header.Set(name, value)
	}

	// The redirect count belongs to one request, so each call gets its own
	// http.Client around the shared default transport.
	redirects := 0
	httpClient := &http.Client{
		Timeout: c.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			redirects = len(via)
			return nil
		},
	}

	logger.Printf("GET %s", p.RequestURL())
	logger.Printf("equivalent: %s", p.CurlCommand())

	startTime := time.Now()
	resp, err := httpClient.Do(req)
	elapsed := time.Since(startTime)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	r := &Response{
		Status:    resp.StatusCode,
		Headers:   resp.Header,
		FinalURL:  resp.Request.URL.String(),
		Redirects: redirects,
		Elapsed:   elapsed,
		Body:      body,
	}
	logger.Printf("got status %d from %s in %s (%d redirect(s), %d body bytes)",
		r.Status, r.FinalURL, r.Elapsed, r.Redirects, len(r.Body))
	return r, nil
}
