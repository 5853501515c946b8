package derive

import "github.com/rickgao/debtwatch/internal/model"

const (
	// MillionEUR converts a millions-of-euros value to euros.
	MillionEUR = 1_000_000

	// DefaultPopulation is used for per-capita figures when no population
	// point is available.
	DefaultPopulation = 68_000_000

	// DefaultAssumedInterestRate is the average rate applied to the debt stock
	// for the interest-charge estimate. It is a configured assumption, not a
	// fetched figure.
	DefaultAssumedInterestRate = 0.028

	// Unranked is returned by EURanking when the country is absent.
	Unranked = 0
)

// Direction of a trend.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Trend compares the last two points of a series.
type Trend struct {
	Direction Direction `json:"direction"`
	Magnitude float64   `json:"magnitude"`
}

// PerCapita divides every debt point by the latest population value.
//
// The same latest population figure is used for every year of debt. When
// population is empty, defaultPopulation is used; a non-positive default
// falls back to DefaultPopulation.
func PerCapita(debt, population model.TimeSeries, defaultPopulation float64) model.TimeSeries {
	if defaultPopulation <= 0 {
		defaultPopulation = DefaultPopulation
	}
	latest := defaultPopulation
	if p, ok := population.Last(); ok && p.Value > 0 {
		latest = p.Value
	}

	return debt.Map(func(p model.TimePoint) float64 {
		return p.Value * MillionEUR / latest
	})
}

// SeriesTrend returns the direction and magnitude of the latest change.
// Fewer than two points is neutral with zero magnitude.
func SeriesTrend(series model.TimeSeries) Trend {
	last, okLast := series.Last()
	prev, okPrev := series.Previous()
	if !okLast || !okPrev {
		return Trend{Direction: DirectionNeutral}
	}

	change := last.Value - prev.Value
	switch {
	case change > 0:
		return Trend{Direction: DirectionUp, Magnitude: change}
	case change < 0:
		return Trend{Direction: DirectionDown, Magnitude: change}
	default:
		// An unchanged value is neither a rise nor a fall.
		return Trend{Direction: DirectionNeutral, Magnitude: 0}
	}
}

// YearOverYearDelta returns the latest annual debt change in euros.
// The second return is false when fewer than two points exist.
func YearOverYearDelta(debt model.TimeSeries) (float64, bool) {
	last, okLast := debt.Last()
	prev, okPrev := debt.Previous()
	if !okLast || !okPrev {
		return 0, false
	}
	return (last.Value - prev.Value) * MillionEUR, true
}

// InterestChargeEstimate applies rate to the latest debt stock, in euros.
func InterestChargeEstimate(debt model.TimeSeries, rate float64) (float64, bool) {
	last, ok := debt.Last()
	if !ok {
		return 0, false
	}
	return last.Value * MillionEUR * rate, true
}

// EURanking returns the rank of countryCode in the comparison table.
func EURanking(table []model.CountryDebtEntry, countryCode string) (int, bool) {
	for _, entry := range table {
		if entry.Code == countryCode {
			return entry.Rank, true
		}
	}
	return Unranked, false
}

// YoYVariationPct returns the percent change of debt in year versus year-1.
// Zero when either year is missing or the previous value is zero.
func YoYVariationPct(debt model.TimeSeries, year int) float64 {
	cur, ok := debt.At(year)
	if !ok {
		return 0
	}
	prev, ok := debt.At(year - 1)
	if !ok || prev.Value == 0 {
		return 0
	}
	return (cur.Value - prev.Value) / prev.Value * 100
}
