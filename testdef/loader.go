package testdef

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
)

// SuiteData holds every test-case family, as loaded from the data directory.
type SuiteData struct {
	Status             []StatusCase
	CurrencySets       []CurrencySetCase
	ConditionalFetch   []ConditionalFetchCase
	SupportedFormats   []MediaTypeCase
	UnsupportedFormats []MediaTypeCase
	ObservationCounts  []ObservationCountCase
	Latency            []LatencyCase
}

// Load reads all of the test data files from dir. Every family's file must
// be present, even if its list is empty, so that a misnamed file cannot
// silently drop a whole family from the run.
func Load(dir string) (*SuiteData, error) {
	var data SuiteData
	files := []struct {
		name string
		dest interface{}
	}{
		{"status_redirect.json", &data.Status},
		{"currency_sets.json", &data.CurrencySets},
		{"conditional_fetch.json", &data.ConditionalFetch},
		{"supported_formats.json", &data.SupportedFormats},
		{"unsupported_formats.json", &data.UnsupportedFormats},
		{"observation_counts.json", &data.ObservationCounts},
		{"latency.json", &data.Latency},
	}
	for _, f := range files {
		fileData, err := ioutil.ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, fmt.Errorf("could not read test data: %w", err)
		}
		if err := json.Unmarshal(fileData, f.dest); err != nil {
			return nil, fmt.Errorf("malformed test data in %s: %w", f.name, err)
		}
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *SuiteData) validate() error {
	for _, c := range d.CurrencySets {
		if len(c.Currencies) == 0 {
			return fmt.Errorf("currency set case for %q has no currencies; wildcard keys are not covered", c.URL)
		}
	}
	for _, c := range d.ObservationCounts {
		if c.Count < 1 {
			return fmt.Errorf("observation count case for %q must request at least one observation", c.URL)
		}
	}
	return nil
}
