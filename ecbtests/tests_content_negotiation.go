package ecbtests

import (
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

// DoContentNegotiationTests checks both sides of Accept-header negotiation:
// a recognized media type must yield a success response, and an unrecognized
// one must be refused with 406 Not Acceptable.
func DoContentNegotiationTests(t *T) {
	t.Run("supported media types", func(t *T) {
		doMediaTypeTests(t, t.data.SupportedFormats, http.StatusOK)
	})
	t.Run("unsupported media types", func(t *T) {
		doMediaTypeTests(t, t.data.UnsupportedFormats, http.StatusNotAcceptable)
	})
}

func doMediaTypeTests(t *T, cases []testdef.MediaTypeCase, familyDefault int) {
	for _, c := range cases {
		c := c
		t.Run(c.Name(), func(t *T) {
			resp := t.Get(apiclient.Params{
				Protocol: testdef.ProtocolOrDefault(c.Protocol),
				URL:      c.URL,
				Headers:  map[string]string{"Accept": c.MediaType},
			})
			assert.Equal(t, c.ExpectedStatus(familyDefault), resp.Status)
		})
	}
}
