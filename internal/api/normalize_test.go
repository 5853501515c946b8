package api

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rickgao/debtwatch/internal/model"
)

const debtDocument = `{
  "label": "Government deficit/surplus, debt and associated data",
  "dimension": {
    "unit": {"category": {"index": {"MIO_EUR": 0}}},
    "geo":  {"category": {"index": {"FR": 0}}},
    "time": {"category": {"index": {"2022": 2, "2020": 0, "2021": 1, "2023": 3, "2024": 4}}}
  },
  "value": {"0": 2650000, "1": 2813000, "2": 2956800, "3": 3101200, "4": 3250000}
}`

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.TimePoint
	}{
		{
			name: "sorted by label",
			raw:  debtDocument,
			want: []model.TimePoint{
				{Year: 2020, Value: 2650000},
				{Year: 2021, Value: 2813000},
				{Year: 2022, Value: 2956800},
				{Year: 2023, Value: 3101200},
				{Year: 2024, Value: 3250000},
			},
		},
		{
			name: "case-insensitive time axis",
			raw:  `{"dimension":{"TIME":{"category":{"index":{"2024":0}}}},"value":{"0":68400000}}`,
			want: []model.TimePoint{{Year: 2024, Value: 68400000}},
		},
		{
			name: "null values dropped",
			raw:  `{"dimension":{"time":{"category":{"index":{"2023":0,"2024":1}}}},"value":{"0":110.6,"1":null}}`,
			want: []model.TimePoint{{Year: 2023, Value: 110.6}},
		},
		{
			name: "missing offsets dropped",
			raw:  `{"dimension":{"time":{"category":{"index":{"2023":0,"2024":1}}}},"value":{"1":112.2}}`,
			want: []model.TimePoint{{Year: 2024, Value: 112.2}},
		},
		{
			name: "array value form",
			raw:  `{"dimension":{"time":{"category":{"index":{"2023":0,"2024":1}}}},"value":[110.6,112.2]}`,
			want: []model.TimePoint{{Year: 2023, Value: 110.6}, {Year: 2024, Value: 112.2}},
		},
		{
			name: "non-year labels dropped",
			raw:  `{"dimension":{"time":{"category":{"index":{"2024":0,"TOTAL":1}}}},"value":{"0":1,"1":2}}`,
			want: []model.TimePoint{{Year: 2024, Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]byte(tt.raw)).Points()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing dimension", `{"value":{"0":1}}`},
		{"missing value", `{"dimension":{"time":{"category":{"index":{"2024":0}}}}}`},
		{"null value", `{"dimension":{"time":{"category":{"index":{"2024":0}}}},"value":null}`},
		{"no time axis", `{"dimension":{"geo":{"category":{"index":{"FR":0}}}},"value":{"0":1}}`},
		{"not json", `<html>maintenance</html>`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := ParseDocument([]byte(tt.raw))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("ParseDocument() error = %v, want ErrMalformedResponse", err)
			}
			if series.Len() != 0 {
				t.Errorf("series.Len() = %d, want 0", series.Len())
			}
			if got := Normalize([]byte(tt.raw)); got.Len() != 0 {
				t.Errorf("Normalize().Len() = %d, want 0", got.Len())
			}
		})
	}
}

func TestNormalizeDocument_Nil(t *testing.T) {
	if _, err := NormalizeDocument(nil); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("NormalizeDocument(nil) error = %v, want ErrMalformedResponse", err)
	}
}
