package ecbtests

import (
	"github.com/stretchr/testify/assert"

	"github.com/fxqa/ecb-contract-tests/apiclient"
)

// DoStatusTests checks the response status for each configured URL. A
// request over plain HTTP must additionally resolve, after one redirect
// hop, to the secure endpoint.
func DoStatusTests(t *T) {
	for _, c := range t.data.Status {
		c := c
		t.Run(c.Name(), func(t *T) {
			resp := t.Get(apiclient.Params{Protocol: c.Protocol, URL: c.URL})
			assert.Equal(t, c.ExpectedStatus(), resp.Status)
			if c.Protocol == "http" {
				assertRedirectedToSecure(t, resp)
			}
		})
	}
}
