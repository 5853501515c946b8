// Package window slices canonical series to a trailing-year display window.
package window

import "github.com/rickgao/debtwatch/internal/model"

// Bound returns the inclusive lower year for a token. The second return is
// false when the window is unbounded (ALL or an unrecognized token).
func Bound(token model.WindowToken, referenceYear int) (int, bool) {
	switch token {
	case model.Window5Y:
		return referenceYear - 5, true
	case model.Window10Y:
		return referenceYear - 10, true
	case model.Window20Y:
		return referenceYear - 20, true
	default:
		return 0, false
	}
}

// Filter keeps the points with year >= Bound(token, referenceYear).
//
// No upper bound is applied, so future-dated points are kept. Filter is
// idempotent and preserves order.
func Filter(series model.TimeSeries, token model.WindowToken, referenceYear int) model.TimeSeries {
	bound, ok := Bound(token, referenceYear)
	if !ok {
		return series.Clone()
	}
	return series.Filter(func(p model.TimePoint) bool {
		return p.Year >= bound
	})
}
