package derive

import (
	"math"
	"testing"

	"github.com/rickgao/debtwatch/internal/model"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func debtSeries() model.TimeSeries {
	return model.NewTimeSeries(
		model.TimePoint{Year: 2019, Value: 2380000},
		model.TimePoint{Year: 2020, Value: 2650000},
		model.TimePoint{Year: 2021, Value: 2813000},
		model.TimePoint{Year: 2022, Value: 2956800},
		model.TimePoint{Year: 2023, Value: 3101200},
		model.TimePoint{Year: 2024, Value: 3250000},
	)
}

func TestPerCapita(t *testing.T) {
	debt := debtSeries()
	population := model.NewTimeSeries(model.TimePoint{Year: 2024, Value: 68400000})

	got := PerCapita(debt, population, DefaultPopulation)

	if got.Len() != debt.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), debt.Len())
	}
	for i, year := range debt.Years() {
		if got.Years()[i] != year {
			t.Errorf("year[%d] = %d, want %d", i, got.Years()[i], year)
		}
		d, _ := debt.At(year)
		p, _ := got.At(year)
		if want := d.Value * 1e6 / 68400000; p.Value != want {
			t.Errorf("perCapita[%d] = %v, want %v", year, p.Value, want)
		}
	}

	p2024, _ := got.At(2024)
	if !approx(p2024.Value, 47514.62, 0.01) {
		t.Errorf("perCapita[2024] = %v, want ~47514.62", p2024.Value)
	}
}

func TestPerCapita_UsesLatestPopulationOnly(t *testing.T) {
	debt := debtSeries()
	population := model.NewTimeSeries(
		model.TimePoint{Year: 2019, Value: 67000000},
		model.TimePoint{Year: 2024, Value: 68400000},
	)

	got := PerCapita(debt, population, DefaultPopulation)
	p2019, _ := got.At(2019)
	if want := 2380000 * 1e6 / 68400000.0; p2019.Value != want {
		t.Errorf("perCapita[2019] = %v, want %v (latest population)", p2019.Value, want)
	}
}

func TestPerCapita_DefaultPopulation(t *testing.T) {
	debt := debtSeries()

	got := PerCapita(debt, model.TimeSeries{}, DefaultPopulation)
	p, _ := got.At(2024)
	if want := 3250000 * 1e6 / 68000000.0; p.Value != want {
		t.Errorf("perCapita[2024] = %v, want %v", p.Value, want)
	}

	got = PerCapita(debt, model.TimeSeries{}, 0)
	p, _ = got.At(2024)
	if want := 3250000 * 1e6 / float64(DefaultPopulation); p.Value != want {
		t.Errorf("perCapita[2024] with zero default = %v, want %v", p.Value, want)
	}

	if PerCapita(model.TimeSeries{}, model.TimeSeries{}, DefaultPopulation).Len() != 0 {
		t.Error("perCapita of empty debt not empty")
	}
}

func TestSeriesTrend(t *testing.T) {
	tests := []struct {
		name          string
		series        model.TimeSeries
		wantDirection Direction
		wantMagnitude float64
	}{
		{
			name: "up",
			series: model.NewTimeSeries(
				model.TimePoint{Year: 2022, Value: 111.9},
				model.TimePoint{Year: 2023, Value: 110.6},
				model.TimePoint{Year: 2024, Value: 112.2},
			),
			wantDirection: DirectionUp,
			wantMagnitude: 1.6,
		},
		{
			name: "down",
			series: model.NewTimeSeries(
				model.TimePoint{Year: 2022, Value: 111.9},
				model.TimePoint{Year: 2023, Value: 110.6},
			),
			wantDirection: DirectionDown,
			wantMagnitude: -1.3,
		},
		{
			name: "flat",
			series: model.NewTimeSeries(
				model.TimePoint{Year: 2023, Value: 5},
				model.TimePoint{Year: 2024, Value: 5},
			),
			wantDirection: DirectionNeutral,
		},
		{
			name:          "single point",
			series:        model.NewTimeSeries(model.TimePoint{Year: 2024, Value: 112.2}),
			wantDirection: DirectionNeutral,
		},
		{
			name:          "empty",
			wantDirection: DirectionNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeriesTrend(tt.series)
			if got.Direction != tt.wantDirection {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.wantDirection)
			}
			if !approx(got.Magnitude, tt.wantMagnitude, 1e-9) {
				t.Errorf("Magnitude = %v, want %v", got.Magnitude, tt.wantMagnitude)
			}
		})
	}
}

func TestYearOverYearDelta(t *testing.T) {
	delta, ok := YearOverYearDelta(debtSeries())
	if !ok {
		t.Fatal("YearOverYearDelta() ok = false")
	}
	if !approx(delta, 148_800_000_000, 1) {
		t.Errorf("delta = %v, want 148,800,000,000", delta)
	}

	if _, ok := YearOverYearDelta(model.NewTimeSeries(model.TimePoint{Year: 2024, Value: 1})); ok {
		t.Error("YearOverYearDelta() on one point ok = true, want false")
	}
}

func TestInterestChargeEstimate(t *testing.T) {
	charge, ok := InterestChargeEstimate(debtSeries(), DefaultAssumedInterestRate)
	if !ok {
		t.Fatal("InterestChargeEstimate() ok = false")
	}
	if !approx(charge, 91_000_000_000, 1) {
		t.Errorf("charge = %v, want 91,000,000,000", charge)
	}

	if _, ok := InterestChargeEstimate(model.TimeSeries{}, DefaultAssumedInterestRate); ok {
		t.Error("InterestChargeEstimate() on empty ok = true, want false")
	}
}

func TestEURanking(t *testing.T) {
	table := []model.CountryDebtEntry{
		{Code: "GR", Name: "Grèce", RatioPct: 172.6, Rank: 1},
		{Code: "FR", Name: "France", RatioPct: 110.6, Rank: 4},
	}

	if rank, ok := EURanking(table, "FR"); !ok || rank != 4 {
		t.Errorf("EURanking(FR) = %d, %v, want 4, true", rank, ok)
	}
	if rank, ok := EURanking(table, "NL"); ok || rank != Unranked {
		t.Errorf("EURanking(NL) = %d, %v, want Unranked, false", rank, ok)
	}
}

func TestYoYVariationPct(t *testing.T) {
	debt := debtSeries()

	got := YoYVariationPct(debt, 2024)
	want := (3250000.0 - 3101200.0) / 3101200.0 * 100
	if !approx(got, want, 1e-9) {
		t.Errorf("YoYVariationPct(2024) = %v, want %v", got, want)
	}
	if got := YoYVariationPct(debt, 2019); got != 0 {
		t.Errorf("YoYVariationPct(2019) = %v, want 0", got)
	}
}

func TestCompute(t *testing.T) {
	debt := debtSeries()
	population := model.NewTimeSeries(model.TimePoint{Year: 2024, Value: 68400000})
	d := model.CanonicalDataset{
		Debt:       debt,
		GDPRatio:   model.NewTimeSeries(model.TimePoint{Year: 2023, Value: 110.6}, model.TimePoint{Year: 2024, Value: 112.2}),
		Population: population,
		PerCapita:  PerCapita(debt, population, DefaultPopulation),
		EUComparison: []model.CountryDebtEntry{
			{Code: "FR", Name: "France", RatioPct: 110.6, Rank: 4},
		},
	}

	m := Compute(d, Options{CountryCode: "FR"})

	if m.Year != 2024 {
		t.Errorf("Year = %d, want 2024", m.Year)
	}
	if m.InterestRate != DefaultAssumedInterestRate {
		t.Errorf("InterestRate = %v, want default", m.InterestRate)
	}
	if m.PerCapita == nil || !approx(*m.PerCapita, 47514.62, 0.01) {
		t.Errorf("PerCapita = %v, want ~47514.62", m.PerCapita)
	}
	if m.Trend.Direction != DirectionUp {
		t.Errorf("Trend.Direction = %q, want up", m.Trend.Direction)
	}
	if m.YoYDelta == nil || !approx(*m.YoYDelta, 148_800_000_000, 1) {
		t.Errorf("YoYDelta = %v", m.YoYDelta)
	}
	if m.InterestCharge == nil || !approx(*m.InterestCharge, 91_000_000_000, 1) {
		t.Errorf("InterestCharge = %v", m.InterestCharge)
	}
	if m.EURank != 4 {
		t.Errorf("EURank = %d, want 4", m.EURank)
	}
	if m.Population != 68400000 {
		t.Errorf("Population = %v, want 68400000", m.Population)
	}

	empty := Compute(model.CanonicalDataset{}, Options{CountryCode: "FR", AssumedInterestRate: 0.03})
	if empty.YoYDelta != nil || empty.InterestCharge != nil || empty.DebtEUR != nil {
		t.Errorf("empty dataset produced figures: %+v", empty)
	}
	if empty.InterestRate != 0.03 {
		t.Errorf("InterestRate = %v, want 0.03", empty.InterestRate)
	}
	if empty.EURank != Unranked {
		t.Errorf("EURank = %d, want Unranked", empty.EURank)
	}
}
