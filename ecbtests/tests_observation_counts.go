package ecbtests

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/sdmx"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

// DoObservationCountTests requests the last N observations of a series and
// verifies both the exact count and that every returned period falls within
// the window of the N most recent publication days.
func DoObservationCountTests(t *T) {
	for _, c := range t.data.ObservationCounts {
		c := c
		t.Run(c.Name(), func(t *T) {
			resp := t.Get(apiclient.Params{
				Protocol: testdef.ProtocolOrDefault(c.Protocol),
				URL:      c.URL,
				Headers:  c.Headers,
				Query:    url.Values{"lastNObservations": {strconv.Itoa(c.Count)}},
			})
			require.Equal(t, http.StatusOK, resp.Status)

			observations, err := sdmx.ParseObservations(resp.Body)
			require.NoError(t, err)
			assert.Len(t, observations, c.Count)

			now := time.Now()
			earliest := now.AddDate(0, 0, -observationWindowDays(c.Count))
			for _, o := range observations {
				period, err := sdmx.ParsePeriod(o.Period)
				require.NoError(t, err, "unparseable observation period %q", o.Period)
				assert.False(t, period.Before(earliest),
					"observation for %s is older than the expected window", o.Period)
				assert.False(t, period.After(now),
					"observation for %s is in the future", o.Period)
			}
		})
	}
}

// observationWindowDays is how many calendar days back the periods of the
// last n daily observations may reach. Rates are only published on business
// days, so two weekend days are allowed per started week of observations,
// plus one day of slack for today's rate not having been uploaded yet.
func observationWindowDays(n int) int {
	startedWeeks := (n + 4) / 5
	return n + 2*startedWeeks + 1
}
