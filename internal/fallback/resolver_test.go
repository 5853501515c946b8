package fallback

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rickgao/debtwatch/internal/model"
)

func TestResolver_LiveDatasetsPreferMemory(t *testing.T) {
	r := NewResolver(nil)
	current := model.CanonicalDataset{
		Debt: model.NewTimeSeries(model.TimePoint{Year: 2025, Value: 3400000}),
	}

	res := r.Fallback(model.DatasetDebt, current)
	if res.Tier != TierMemory {
		t.Errorf("Tier = %q, want %q", res.Tier, TierMemory)
	}
	if diff := cmp.Diff(current.Debt.Points(), res.Series.Points()); diff != "" {
		t.Errorf("Series mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_LiveDatasetsStaticWhenEmpty(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		id       model.DatasetID
		wantLen  int
		wantLast float64
	}{
		{model.DatasetDebt, 3, 3250000},
		{model.DatasetGDPRatio, 3, 112.2},
		{model.DatasetPopulation, 1, 68400000},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			res := r.Fallback(tt.id, model.CanonicalDataset{})
			if res.Tier != TierStatic {
				t.Errorf("Tier = %q, want %q", res.Tier, TierStatic)
			}
			if res.Series.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", res.Series.Len(), tt.wantLen)
			}
			if last, _ := res.Series.Last(); last.Value != tt.wantLast {
				t.Errorf("Last().Value = %v, want %v", last.Value, tt.wantLast)
			}
		})
	}
}

func TestResolver_ReferenceDatasetsAlwaysStatic(t *testing.T) {
	r := NewResolver(nil)
	current := model.CanonicalDataset{
		EUComparison: []model.CountryDebtEntry{{Code: "XX", Name: "Nowhere", RatioPct: 1, Rank: 1}},
		Indicators:   map[string]model.TimeSeries{"other": model.NewTimeSeries(model.TimePoint{Year: 2024, Value: 1})},
	}

	eu := r.Fallback(model.DatasetEUComparison, current)
	if eu.Tier != TierStatic || len(eu.Table) != 6 {
		t.Errorf("eu_comparison = tier %q, %d rows, want static with 6 rows", eu.Tier, len(eu.Table))
	}
	for i := 1; i < len(eu.Table); i++ {
		if eu.Table[i].Rank < eu.Table[i-1].Rank {
			t.Errorf("table not in ascending rank order at %d", i)
		}
	}

	ind := r.Fallback(model.DatasetEconomicIndicators, current)
	if ind.Tier != TierStatic || len(ind.Indicators) != 4 {
		t.Errorf("economic_indicators = tier %q, %d series, want static with 4", ind.Tier, len(ind.Indicators))
	}
	if _, ok := ind.Indicators["other"]; ok {
		t.Error("reference bundle taken from memory")
	}
}

func TestResolver_UnknownDatasetIsEmpty(t *testing.T) {
	r := NewResolver(nil)

	for _, key := range []string{"gov_10dd_edpt1", "", "DROP TABLE", "budget_balance"} {
		res := r.FallbackKey(key, StaticSnapshot())
		if !res.IsEmpty() {
			t.Errorf("FallbackKey(%q) = %+v, want empty", key, res)
		}
	}

	res := r.Fallback(model.DatasetID("nope"), StaticSnapshot())
	if !res.IsEmpty() || res.Tier != TierNone {
		t.Errorf("Fallback(nope) = %+v, want empty with tier none", res)
	}
}

func TestResolver_ResultsAreIndependentCopies(t *testing.T) {
	r := NewResolver(nil)
	first := r.Fallback(model.DatasetEUComparison, model.CanonicalDataset{})
	first.Table[0].Rank = 99

	second := r.Fallback(model.DatasetEUComparison, model.CanonicalDataset{})
	if second.Table[0].Rank != 1 {
		t.Errorf("embedded table mutated through a previous result")
	}
}

func TestStaticSnapshot(t *testing.T) {
	s := StaticSnapshot()

	if s.Debt.Len() != 6 || s.GDPRatio.Len() != 6 {
		t.Errorf("debt/ratio lengths = %d/%d, want 6/6", s.Debt.Len(), s.GDPRatio.Len())
	}
	if diff := cmp.Diff(s.Debt.Years(), s.GDPRatio.Years()); diff != "" {
		t.Errorf("debt and ratio year domains differ (-debt +ratio):\n%s", diff)
	}
	if len(s.EUComparison) != 8 {
		t.Errorf("len(EUComparison) = %d, want 8", len(s.EUComparison))
	}
	if len(s.Indicators) != 4 {
		t.Errorf("len(Indicators) = %d, want 4", len(s.Indicators))
	}
	if s.PerCapita.Len() != 0 {
		t.Errorf("PerCapita populated in static snapshot")
	}
}
