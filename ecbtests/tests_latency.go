package ecbtests

import (
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxqa/ecb-contract-tests/apiclient"
	"github.com/fxqa/ecb-contract-tests/testdef"
)

const defaultLatencyThresholdMillis = 2000

// DoLatencyTests checks that a single request to each configured endpoint
// completes within its threshold. One sample per case, with no retry and no
// aggregation: a slow request is a failure, not a warning. That makes these
// cases sensitive to network variance, which is a known limitation.
func DoLatencyTests(t *T) {
	for _, c := range t.data.Latency {
		c := c
		t.Run(c.Name(), func(t *T) {
			resp := t.Get(apiclient.Params{
				Protocol: testdef.ProtocolOrDefault(c.Protocol),
				URL:      c.URL,
			})
			require.Equal(t, http.StatusOK, resp.Status)

			threshold := time.Duration(c.MaxMillis.OrElse(defaultLatencyThresholdMillis)) * time.Millisecond
			assert.LessOrEqual(t, int64(resp.Elapsed), int64(threshold),
				"request took %s, threshold is %s", resp.Elapsed, threshold)
		})
	}
}
