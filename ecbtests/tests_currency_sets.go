package ecbtests

import (
	"sort"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/sdmx"
)

// DoCurrencySetTests requests several currencies in one series key and
// verifies that the response contains exactly the requested set - no
// missing currencies and no extras - with every series quoted against the
// requested denominator.
func DoCurrencySetTests(t *T) {
	for _, c := range t.data.CurrencySets {
		c := c
		t.Run(c.Name(), func(t *T) {
			resp := t.Get(apiclient.Params{
				Protocol: c.Protocol,
				URL:      c.URL + sdmx.SeriesKey(c.Currencies, c.Denominator),
				Headers:  c.Headers,
			})
			require.Equal(t, c.ExpectedStatus(), resp.Status)
			if c.Protocol == "http" {
				assertRedirectedToSecure(t, resp)
			}

			observations, err := sdmx.ParseObservations(resp.Body)
			require.NoError(t, err)
			require.NotEmpty(t, observations, "response contained no observations")

			requested := append([]string(nil), c.Currencies...)
			sort.Strings(requested)
			assert.Equal(t, requested, sdmx.Currencies(observations),
				"response currency set differs from the requested set")

			for _, o := range observations {
				assert.Equal(t, c.Denominator, o.Denominator,
					"series for %s is quoted against the wrong denominator", o.Currency)
			}
		})
	}
}
