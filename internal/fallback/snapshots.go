package fallback

import "github.com/rickgao/debtwatch/internal/model"

// Indicator series names carried in CanonicalDataset.Indicators.
const (
	IndicatorGDPGrowth     = "gdp_growth"
	IndicatorInflation     = "inflation"
	IndicatorUnemployment  = "unemployment"
	IndicatorInterestRates = "interest_rates"
)

func pts(pairs ...float64) model.TimeSeries {
	points := make([]model.TimePoint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		points = append(points, model.TimePoint{Year: int(pairs[i]), Value: pairs[i+1]})
	}
	return model.NewTimeSeries(points...)
}

// -----------------------------------------------------------------------------
// Full static snapshot (whole-cycle substitute)
// -----------------------------------------------------------------------------

func staticDebt() model.TimeSeries {
	return pts(
		2019, 2380000,
		2020, 2650000,
		2021, 2813000,
		2022, 2956800,
		2023, 3101200,
		2024, 3250000,
	)
}

func staticGDPRatio() model.TimeSeries {
	return pts(
		2019, 98.1,
		2020, 114.6,
		2021, 112.9,
		2022, 111.9,
		2023, 110.6,
		2024, 112.2,
	)
}

func staticPopulation() model.TimeSeries {
	return pts(2024, 68400000)
}

func staticEUComparison() []model.CountryDebtEntry {
	return []model.CountryDebtEntry{
		{Code: "GR", Name: "Grèce", RatioPct: 172.6, Rank: 1},
		{Code: "IT", Name: "Italie", RatioPct: 134.6, Rank: 2},
		{Code: "PT", Name: "Portugal", RatioPct: 120.2, Rank: 3},
		{Code: "FR", Name: "France", RatioPct: 110.6, Rank: 4},
		{Code: "ES", Name: "Espagne", RatioPct: 105.5, Rank: 5},
		{Code: "BE", Name: "Belgique", RatioPct: 105.0, Rank: 6},
		{Code: "AT", Name: "Autriche", RatioPct: 82.4, Rank: 7},
		{Code: "DE", Name: "Allemagne", RatioPct: 63.7, Rank: 15},
	}
}

func staticIndicators() map[string]model.TimeSeries {
	return map[string]model.TimeSeries{
		IndicatorGDPGrowth:     pts(2020, -8.0, 2021, 6.8, 2022, 2.5, 2023, 0.9, 2024, 1.1),
		IndicatorInflation:     pts(2020, 0.5, 2021, 2.1, 2022, 5.9, 2023, 4.9, 2024, 2.8),
		IndicatorUnemployment:  pts(2020, 8.0, 2021, 7.9, 2022, 7.3, 2023, 7.4, 2024, 7.5),
		IndicatorInterestRates: pts(2020, 0.25, 2021, 0.15, 2022, 2.1, 2023, 3.2, 2024, 2.9),
	}
}

// -----------------------------------------------------------------------------
// Per-dataset snapshots (single-dataset substitute)
// -----------------------------------------------------------------------------

func datasetDebt() model.TimeSeries {
	return pts(2022, 2956800, 2023, 3101200, 2024, 3250000)
}

func datasetGDPRatio() model.TimeSeries {
	return pts(2022, 111.9, 2023, 110.6, 2024, 112.2)
}

func datasetPopulation() model.TimeSeries {
	return pts(2024, 68400000)
}

func datasetEUComparison() []model.CountryDebtEntry {
	return []model.CountryDebtEntry{
		{Code: "GR", Name: "Grèce", RatioPct: 172.6, Rank: 1},
		{Code: "IT", Name: "Italie", RatioPct: 134.6, Rank: 2},
		{Code: "FR", Name: "France", RatioPct: 110.6, Rank: 4},
		{Code: "ES", Name: "Espagne", RatioPct: 105.5, Rank: 5},
		{Code: "BE", Name: "Belgique", RatioPct: 105.0, Rank: 6},
		{Code: "DE", Name: "Allemagne", RatioPct: 63.7, Rank: 15},
	}
}

func datasetIndicators() map[string]model.TimeSeries {
	return map[string]model.TimeSeries{
		IndicatorGDPGrowth:     pts(2020, -8.0, 2021, 6.8, 2022, 2.5, 2023, 0.9),
		IndicatorInflation:     pts(2020, 0.5, 2021, 2.1, 2022, 5.9, 2023, 4.9),
		IndicatorUnemployment:  pts(2020, 8.0, 2021, 7.9, 2022, 7.3, 2023, 7.4),
		IndicatorInterestRates: pts(2020, 0.25, 2021, 0.15, 2022, 2.1, 2023, 3.2),
	}
}
