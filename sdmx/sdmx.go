// Package sdmx implements the minimal subset of SDMX-ML generic data
// handling that the suite needs: flattening a response document into
// observations, and building the series-key path segment for a request.
package sdmx

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Observation is a single dated exchange-rate data point, together with the
// series-key values that identify which rate it belongs to.
type Observation struct {
	Currency    string
	Denominator string
	Period      string
	Value       string
}

// genericData mirrors just enough of a generic data document to get at the
// series keys and observations. Tags match local element names only, so the
// message/generic namespace prefixes in real responses are ignored.
type genericData struct {
	XMLName xml.Name `xml:"GenericData"`
	DataSet struct {
		Series []series `xml:"Series"`
	} `xml:"DataSet"`
}

type series struct {
	SeriesKey struct {
		Values []keyValue `xml:"Value"`
	} `xml:"SeriesKey"`
	Obs []obsEntry `xml:"Obs"`
}

type keyValue struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type obsEntry struct {
	Dimension struct {
		Value string `xml:"value,attr"`
	} `xml:"ObsDimension"`
	Value struct {
		Value string `xml:"value,attr"`
	} `xml:"ObsValue"`
}

const (
	currencyDimension    = "CURRENCY"
	denominatorDimension = "CURRENCY_DENOM"
)

// ParseObservations extracts the flattened observation list from a generic
// data document, in document order.
func ParseObservations(data []byte) ([]Observation, error) {
	var doc genericData
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed generic data document: %w", err)
	}
	var ret []Observation
	for _, s := range doc.DataSet.Series {
		var currency, denominator string
		for _, kv := range s.SeriesKey.Values {
			switch kv.ID {
			case currencyDimension:
				currency = kv.Value
			case denominatorDimension:
				denominator = kv.Value
			}
		}
		for _, o := range s.Obs {
			ret = append(ret, Observation{
				Currency:    currency,
				Denominator: denominator,
				Period:      o.Dimension.Value,
				Value:       o.Value.Value,
			})
		}
	}
	return ret, nil
}

// Currencies returns the distinct currency codes appearing in the
// observations, sorted, so that it can be compared against a requested set
// regardless of response order or duplicates.
func Currencies(observations []Observation) []string {
	seen := make(map[string]bool)
	var ret []string
	for _, o := range observations {
		if !seen[o.Currency] {
			seen[o.Currency] = true
			ret = append(ret, o.Currency)
		}
	}
	sort.Strings(ret)
	return ret
}

// SeriesKey builds the key path segment that selects the average monthly
// rate of each given currency against the denominator, for example
// "M.USD+GBP.EUR.SP00.A".
func SeriesKey(currencies []string, denominator string) string {
	return "M." + strings.Join(currencies, "+") + "." + denominator + ".SP00.A"
}

var periodLayouts = []string{"2006-01-02", "2006-01"}

// ParsePeriod parses a daily or monthly observation period.
func ParsePeriod(period string) (time.Time, error) {
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, period); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized period format %q", period)
}
