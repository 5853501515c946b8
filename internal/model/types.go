package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Dataset Identifiers
// -----------------------------------------------------------------------------

// DatasetID names one dataset acquired (or substituted) during a load cycle.
type DatasetID string

const (
	DatasetDebt               DatasetID = "debt"                // gov_10dd_edpt1, unit MIO_EUR
	DatasetGDPRatio           DatasetID = "gdp_ratio"           // gov_10dd_edpt1, unit PC_GDP
	DatasetPopulation         DatasetID = "population"          // demo_pjan
	DatasetEUComparison       DatasetID = "eu_comparison"       // reference table, never fetched
	DatasetEconomicIndicators DatasetID = "economic_indicators" // reference bundle, never fetched
)

// ErrUnknownDataset is returned when a dataset key is not one of the known identifiers.
var ErrUnknownDataset = errors.New("unknown dataset")

// AllDatasets lists every known dataset in load order.
var AllDatasets = []DatasetID{
	DatasetDebt,
	DatasetGDPRatio,
	DatasetPopulation,
	DatasetEUComparison,
	DatasetEconomicIndicators,
}

// LiveDatasets lists the datasets fetched from the remote API each cycle.
var LiveDatasets = []DatasetID{
	DatasetDebt,
	DatasetGDPRatio,
	DatasetPopulation,
}

// ParseDatasetID converts a key into a DatasetID, rejecting unknown keys.
func ParseDatasetID(key string) (DatasetID, error) {
	id := DatasetID(strings.ToLower(strings.TrimSpace(key)))
	for _, known := range AllDatasets {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, key)
}

// IsLive reports whether the dataset is fetched from the remote API.
func (d DatasetID) IsLive() bool {
	for _, live := range LiveDatasets {
		if d == live {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Reference Types
// -----------------------------------------------------------------------------

// CountryDebtEntry is one row of the EU cross-country comparison table.
type CountryDebtEntry struct {
	Code     string  `json:"code"`      // ISO 3166 alpha-2 (e.g., "FR")
	Name     string  `json:"name"`      // Display name
	RatioPct float64 `json:"ratio_pct"` // Debt-to-GDP ratio in percent
	Rank     int     `json:"rank"`      // EU-27 rank, 1 = highest ratio
}

// -----------------------------------------------------------------------------
// Canonical Dataset
// -----------------------------------------------------------------------------

// CanonicalDataset is the fully resolved output of one load cycle.
//
// A CanonicalDataset is built once per cycle and never mutated after it is
// published. Accessors that hand data to consumers return copies.
type CanonicalDataset struct {
	Debt         TimeSeries            `json:"debt"`       // Millions of euros
	GDPRatio     TimeSeries            `json:"gdp_ratio"`  // Percent of GDP
	Population   TimeSeries            `json:"population"` // Usually a single latest-year point
	PerCapita    TimeSeries            `json:"per_capita"` // Euros per inhabitant, derived
	EUComparison []CountryDebtEntry    `json:"eu_comparison"`
	Indicators   map[string]TimeSeries `json:"indicators"`

	LoadedAt     time.Time   `json:"loaded_at"`
	Degraded     bool        `json:"degraded"`      // Whole-cycle static substitute was used
	FallbackUsed []DatasetID `json:"fallback_used"` // Datasets resolved from fallback
}

// Clone returns a deep copy of the dataset.
func (d CanonicalDataset) Clone() CanonicalDataset {
	out := CanonicalDataset{
		Debt:       d.Debt.Clone(),
		GDPRatio:   d.GDPRatio.Clone(),
		Population: d.Population.Clone(),
		PerCapita:  d.PerCapita.Clone(),
		LoadedAt:   d.LoadedAt,
		Degraded:   d.Degraded,
	}
	if d.EUComparison != nil {
		out.EUComparison = append([]CountryDebtEntry(nil), d.EUComparison...)
	}
	if d.Indicators != nil {
		out.Indicators = make(map[string]TimeSeries, len(d.Indicators))
		for name, s := range d.Indicators {
			out.Indicators[name] = s.Clone()
		}
	}
	if d.FallbackUsed != nil {
		out.FallbackUsed = append([]DatasetID(nil), d.FallbackUsed...)
	}
	return out
}

// IsEmpty reports whether the dataset carries no debt data.
func (d CanonicalDataset) IsEmpty() bool {
	return d.Debt.Len() == 0
}

// SeriesFor returns the live series stored for a dataset.
// Non-series datasets return an empty series.
func (d CanonicalDataset) SeriesFor(id DatasetID) TimeSeries {
	switch id {
	case DatasetDebt:
		return d.Debt
	case DatasetGDPRatio:
		return d.GDPRatio
	case DatasetPopulation:
		return d.Population
	default:
		return TimeSeries{}
	}
}

// -----------------------------------------------------------------------------
// Series Kinds
// -----------------------------------------------------------------------------

// SeriesKind selects a canonical series for filtered reads.
type SeriesKind string

const (
	KindDebt       SeriesKind = "debt"
	KindGDPRatio   SeriesKind = "gdp_ratio"
	KindPerCapita  SeriesKind = "per_capita"
	KindPopulation SeriesKind = "population"
)

// IndicatorPrefix addresses an economic indicator series ("indicator:inflation").
const IndicatorPrefix = "indicator:"

// ErrUnknownSeries is returned for a series kind the dataset does not carry.
var ErrUnknownSeries = errors.New("unknown series")

// Series resolves a kind to the dataset's series.
func (d CanonicalDataset) Series(kind SeriesKind) (TimeSeries, error) {
	switch kind {
	case KindDebt:
		return d.Debt, nil
	case KindGDPRatio:
		return d.GDPRatio, nil
	case KindPerCapita:
		return d.PerCapita, nil
	case KindPopulation:
		return d.Population, nil
	}

	if name, ok := strings.CutPrefix(string(kind), IndicatorPrefix); ok {
		if s, found := d.Indicators[name]; found {
			return s, nil
		}
	}
	return TimeSeries{}, fmt.Errorf("%w: %q", ErrUnknownSeries, kind)
}

// -----------------------------------------------------------------------------
// Window Tokens
// -----------------------------------------------------------------------------

// WindowToken selects a trailing-year display window.
type WindowToken string

const (
	Window5Y  WindowToken = "5Y"
	Window10Y WindowToken = "10Y"
	Window20Y WindowToken = "20Y"
	WindowAll WindowToken = "ALL"
)

// DefaultWindow is the window shown before the caller picks one.
const DefaultWindow = Window5Y

// ErrUnknownWindow is returned for an unrecognized window token.
var ErrUnknownWindow = errors.New("unknown window token")

// ParseWindowToken parses "5Y", "10y", "all", etc.
func ParseWindowToken(s string) (WindowToken, error) {
	switch WindowToken(strings.ToUpper(strings.TrimSpace(s))) {
	case Window5Y:
		return Window5Y, nil
	case Window10Y:
		return Window10Y, nil
	case Window20Y:
		return Window20Y, nil
	case WindowAll:
		return WindowAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// -----------------------------------------------------------------------------
// Extrapolation
// -----------------------------------------------------------------------------

// ExtrapolationState is the anchor of the real-time debt estimate.
type ExtrapolationState struct {
	AnchorTimestamp time.Time `json:"anchor_timestamp"`
	BaseValue       float64   `json:"base_value"`      // Euros at anchor time
	PerSecondRate   float64   `json:"per_second_rate"` // Euros per second
	Active          bool      `json:"active"`
}
