package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/debtwatch/internal/model"
)

// Document is a Eurostat dimensional (JSON-stat 2.0) response.
//
// Only the parts needed to extract a yearly series are decoded. A nil
// Dimension or Value means the field was absent from the payload.
type Document struct {
	Label     string               `json:"label,omitempty"`
	Updated   string               `json:"updated,omitempty"`
	Dimension map[string]Dimension `json:"dimension"`
	Value     Values               `json:"value"`
}

// Dimension is one axis of a Document.
type Dimension struct {
	Label    string   `json:"label,omitempty"`
	Category Category `json:"category"`
}

// Category maps axis labels to flat value offsets.
type Category struct {
	Index map[string]int    `json:"index"`
	Label map[string]string `json:"label,omitempty"`
}

// Values holds observation values keyed by flat offset. A nil entry is a
// null observation.
//
// Eurostat emits an object keyed by offset string ({"0": 1.5}); the array
// form ([1.5, null]) is accepted too.
type Values map[int]*float64

// UnmarshalJSON decodes either the object or the array form.
func (v *Values) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []*float64
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return err
		}
		out := make(Values, len(arr))
		for i, val := range arr {
			out[i] = val
		}
		*v = out
		return nil
	}

	var obj map[string]*float64
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	out := make(Values, len(obj))
	for k, val := range obj {
		offset, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("value offset %q: %w", k, err)
		}
		out[offset] = val
	}
	*v = out
	return nil
}

// Request describes one live dataset query.
type Request struct {
	ID      model.DatasetID // Pipeline dataset identifier
	Dataset string          // Eurostat dataset code (path segment)
	Params  url.Values      // Query parameters
}

// Eurostat dataset codes.
const (
	DatasetGovDebt    = "gov_10dd_edpt1"
	DatasetPopulation = "demo_pjan"
)

// DebtRequest queries general government gross debt in millions of euros.
func DebtRequest(geo string) Request {
	return Request{
		ID:      model.DatasetDebt,
		Dataset: DatasetGovDebt,
		Params:  govDebtParams("MIO_EUR", geo),
	}
}

// GDPRatioRequest queries general government gross debt as a percentage of GDP.
func GDPRatioRequest(geo string) Request {
	return Request{
		ID:      model.DatasetGDPRatio,
		Dataset: DatasetGovDebt,
		Params:  govDebtParams("PC_GDP", geo),
	}
}

// PopulationRequest queries the latest total population on 1 January.
func PopulationRequest(geo string) Request {
	return Request{
		ID:      model.DatasetPopulation,
		Dataset: DatasetPopulation,
		Params: url.Values{
			"sex":            {"T"},
			"age":            {"TOTAL"},
			"geo":            {geo},
			"lastTimePeriod": {"1"},
		},
	}
}

// LiveRequests returns the queries issued every load cycle, in load order.
func LiveRequests(geo string) []Request {
	return []Request{
		DebtRequest(geo),
		GDPRatioRequest(geo),
		PopulationRequest(geo),
	}
}

func govDebtParams(unit, geo string) url.Values {
	return url.Values{
		"unit":    {unit},
		"sector":  {"S13"},
		"na_item": {"GD"},
		"geo":     {geo},
	}
}
