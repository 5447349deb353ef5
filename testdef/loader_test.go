package testdef

import (
	"io/ioutil"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var emptyFamilies = map[string]string{
	"status_redirect.json":     "[]",
	"currency_sets.json":       "[]",
	"conditional_fetch.json":   "[]",
	"supported_formats.json":   "[]",
	"unsupported_formats.json": "[]",
	"observation_counts.json":  "[]",
	"latency.json":             "[]",
}

func writeDataDir(t *testing.T, overrides map[string]string) string {
	dir := t.TempDir()
	for name, content := range emptyFamilies {
		if override, ok := overrides[name]; ok {
			content = override
		}
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestLoadReadsEveryFamily(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"status_redirect.json": `[
			{"protocol": "http", "url": "example.com/service/data", "status": 200},
			{"protocol": "https", "url": "example.com/service/data"}
		]`,
		"currency_sets.json": `[
			{"protocol": "https", "url": "example.com/service/data/EXR/",
			 "currencies": ["USD", "GBP"], "denominator": "EUR",
			 "headers": {"Accept": "application/xml"}}
		]`,
		"latency.json": `[
			{"url": "example.com/service/data", "maxMillis": 1500},
			{"url": "example.com/service/other"}
		]`,
	})

	data, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, data.Status, 2)
	assert.Equal(t, "http example.com/service/data", data.Status[0].Name())
	assert.Equal(t, http.StatusOK, data.Status[0].ExpectedStatus())
	assert.Equal(t, http.StatusOK, data.Status[1].ExpectedStatus(), "omitted status should default to 200")

	require.Len(t, data.CurrencySets, 1)
	assert.Equal(t, "USD+GBP against EUR", data.CurrencySets[0].Name())
	assert.Equal(t, "application/xml", data.CurrencySets[0].Headers["Accept"])

	require.Len(t, data.Latency, 2)
	assert.Equal(t, 1500, data.Latency[0].MaxMillis.OrElse(0))
	assert.False(t, data.Latency[1].MaxMillis.IsDefined())
}

func TestLoadFailsOnMissingFamilyFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadFailsOnMalformedJSON(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"latency.json": "{not json"})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latency.json")
}

func TestLoadRejectsEmptyCurrencyList(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"currency_sets.json": `[
			{"protocol": "https", "url": "example.com/service/data/EXR/",
			 "currencies": [], "denominator": "EUR"}
		]`,
	})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wildcard")
}

func TestLoadRejectsNonPositiveObservationCount(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"observation_counts.json": `[{"url": "example.com/service/data", "count": 0}]`,
	})

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestProtocolOrDefault(t *testing.T) {
	assert.Equal(t, "https", ProtocolOrDefault(""))
	assert.Equal(t, "http", ProtocolOrDefault("http"))
}
