package derive

import "github.com/rickgao/debtwatch/internal/model"

// Options parameterizes Compute.
type Options struct {
	CountryCode         string
	AssumedInterestRate float64
	DefaultPopulation   float64
}

// Metrics bundles the derived figures shown alongside the dataset.
//
// Optional figures are pointers so that "not computed" is distinguishable
// from zero in JSON output.
type Metrics struct {
	Year           int      `json:"year"`                      // Latest debt year
	DebtEUR        *float64 `json:"debt_eur,omitempty"`        // Latest debt stock in euros
	PerCapita      *float64 `json:"per_capita,omitempty"`      // Latest per-capita debt in euros
	GDPRatio       *float64 `json:"gdp_ratio,omitempty"`       // Latest debt-to-GDP ratio
	Trend          Trend    `json:"trend"`                     // Trend of the debt-to-GDP ratio
	YoYDelta       *float64 `json:"yoy_delta,omitempty"`       // Latest annual change in euros
	InterestCharge *float64 `json:"interest_charge,omitempty"` // Estimated annual interest in euros
	InterestRate   float64  `json:"interest_rate"`             // Assumed rate used
	EURank         int      `json:"eu_rank"`                   // 0 when unranked
	Population     float64  `json:"population"`                // Population used for per-capita
}

// Compute derives the headline metrics of a dataset.
func Compute(d model.CanonicalDataset, opts Options) Metrics {
	rate := opts.AssumedInterestRate
	if rate <= 0 {
		rate = DefaultAssumedInterestRate
	}

	population := opts.DefaultPopulation
	if population <= 0 {
		population = DefaultPopulation
	}

	m := Metrics{
		Trend:        SeriesTrend(d.GDPRatio),
		InterestRate: rate,
		Population:   population,
	}

	if last, ok := d.Debt.Last(); ok {
		m.Year = last.Year
		m.DebtEUR = ptr(last.Value * MillionEUR)
	}
	if p, ok := d.PerCapita.Last(); ok {
		m.PerCapita = ptr(p.Value)
	}
	if r, ok := d.GDPRatio.Last(); ok {
		m.GDPRatio = ptr(r.Value)
	}
	if p, ok := d.Population.Last(); ok && p.Value > 0 {
		m.Population = p.Value
	}
	if delta, ok := YearOverYearDelta(d.Debt); ok {
		m.YoYDelta = ptr(delta)
	}
	if charge, ok := InterestChargeEstimate(d.Debt, rate); ok {
		m.InterestCharge = ptr(charge)
	}
	m.EURank, _ = EURanking(d.EUComparison, opts.CountryCode)

	return m
}

func ptr(v float64) *float64 {
	return &v
}
