package model

import (
	"encoding/json"
	"sort"
)

// TimePoint is a single yearly observation.
type TimePoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TimeSeries is an ordered sequence of yearly points.
//
// The zero value is an empty series. Series built with NewTimeSeries are
// strictly ascending by year with at most one point per year.
type TimeSeries struct {
	points []TimePoint
}

// NewTimeSeries sorts points by year and removes duplicate years.
// When a year appears more than once the last occurrence wins.
func NewTimeSeries(points ...TimePoint) TimeSeries {
	if len(points) == 0 {
		return TimeSeries{}
	}

	byYear := make(map[int]float64, len(points))
	for _, p := range points {
		byYear[p.Year] = p.Value
	}

	out := make([]TimePoint, 0, len(byYear))
	for year, value := range byYear {
		out = append(out, TimePoint{Year: year, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return TimeSeries{points: out}
}

// Len returns the number of points.
func (s TimeSeries) Len() int {
	return len(s.points)
}

// Points returns a copy of the points.
func (s TimeSeries) Points() []TimePoint {
	if len(s.points) == 0 {
		return nil
	}
	return append([]TimePoint(nil), s.points...)
}

// Last returns the latest point.
func (s TimeSeries) Last() (TimePoint, bool) {
	if len(s.points) == 0 {
		return TimePoint{}, false
	}
	return s.points[len(s.points)-1], true
}

// Previous returns the second-to-last point.
func (s TimeSeries) Previous() (TimePoint, bool) {
	if len(s.points) < 2 {
		return TimePoint{}, false
	}
	return s.points[len(s.points)-2], true
}

// At returns the point for a given year.
func (s TimeSeries) At(year int) (TimePoint, bool) {
	i := sort.Search(len(s.points), func(i int) bool { return s.points[i].Year >= year })
	if i < len(s.points) && s.points[i].Year == year {
		return s.points[i], true
	}
	return TimePoint{}, false
}

// Years returns the year domain of the series.
func (s TimeSeries) Years() []int {
	years := make([]int, len(s.points))
	for i, p := range s.points {
		years[i] = p.Year
	}
	return years
}

// Clone returns an independent copy.
func (s TimeSeries) Clone() TimeSeries {
	return TimeSeries{points: s.Points()}
}

// Filter returns the points for which keep returns true, preserving order.
func (s TimeSeries) Filter(keep func(TimePoint) bool) TimeSeries {
	var out []TimePoint
	for _, p := range s.points {
		if keep(p) {
			out = append(out, p)
		}
	}
	return TimeSeries{points: out}
}

// Map applies fn to every value, keeping the year domain.
func (s TimeSeries) Map(fn func(TimePoint) float64) TimeSeries {
	if len(s.points) == 0 {
		return TimeSeries{}
	}
	out := make([]TimePoint, len(s.points))
	for i, p := range s.points {
		out[i] = TimePoint{Year: p.Year, Value: fn(p)}
	}
	return TimeSeries{points: out}
}

// MarshalJSON encodes the series as an array of points.
func (s TimeSeries) MarshalJSON() ([]byte, error) {
	if s.points == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.points)
}

// UnmarshalJSON decodes an array of points, restoring ordering invariants.
func (s *TimeSeries) UnmarshalJSON(data []byte) error {
	var points []TimePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	*s = NewTimeSeries(points...)
	return nil
}
