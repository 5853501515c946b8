package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rickgao/debtwatch/internal/model"
)

// timeAxis is the literal axis key used when no key matches case-insensitively.
const timeAxis = "time"

// Normalize converts a raw dimensional document into a yearly series.
// Any malformed input yields an empty series.
func Normalize(raw []byte) model.TimeSeries {
	series, _ := ParseDocument(raw)
	return series
}

// ParseDocument decodes and normalizes a raw document, reporting why the
// result is empty when the payload is malformed.
func ParseDocument(raw []byte) (model.TimeSeries, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.TimeSeries{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return NormalizeDocument(&doc)
}

// NormalizeDocument extracts the time axis of a decoded document.
//
// Labels are visited in lexicographic order; points whose value is null or
// missing, or whose label is not an integer year, are dropped.
func NormalizeDocument(doc *Document) (model.TimeSeries, error) {
	if doc == nil || doc.Dimension == nil || doc.Value == nil {
		return model.TimeSeries{}, fmt.Errorf("%w: missing dimension or value", ErrMalformedResponse)
	}

	axis, ok := doc.Dimension[findTimeKey(doc.Dimension)]
	if !ok {
		return model.TimeSeries{}, fmt.Errorf("%w: no time dimension", ErrMalformedResponse)
	}
	index := axis.Category.Index

	labels := make([]string, 0, len(index))
	for label := range index {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	points := make([]model.TimePoint, 0, len(labels))
	for _, label := range labels {
		value := doc.Value[index[label]]
		if value == nil {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil {
			continue
		}
		points = append(points, model.TimePoint{Year: year, Value: *value})
	}

	return model.NewTimeSeries(points...), nil
}

func findTimeKey(dims map[string]Dimension) string {
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	// Deterministic pick if several keys differ only by case.
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, timeAxis) {
			return k
		}
	}
	return timeAxis
}
