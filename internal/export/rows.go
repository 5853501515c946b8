package export

import (
	"github.com/rickgao/debtwatch/internal/derive"
	"github.com/rickgao/debtwatch/internal/model"
)

// Header is the fixed column order of every export.
var Header = []string{
	"Year",
	"DebtBnEUR",
	"PctGDP",
	"PerCapitaEUR",
	"YoYVariationPct",
	"AssumedRatePct",
	"InterestChargeBnEUR",
}

// Row is one year of the export table.
type Row struct {
	Year                int
	DebtBnEUR           float64
	PctGDP              *float64
	PerCapitaEUR        *float64
	YoYVariationPct     float64
	AssumedRatePct      float64
	InterestChargeBnEUR float64
}

// Rows builds one row per debt year of d, in ascending year order.
func Rows(d model.CanonicalDataset, rate float64) []Row {
	if rate <= 0 {
		rate = derive.DefaultAssumedInterestRate
	}

	points := d.Debt.Points()
	rows := make([]Row, 0, len(points))
	for _, p := range points {
		row := Row{
			Year:                p.Year,
			DebtBnEUR:           p.Value / 1000,
			YoYVariationPct:     derive.YoYVariationPct(d.Debt, p.Year),
			AssumedRatePct:      rate * 100,
			InterestChargeBnEUR: p.Value * rate / 1000,
		}
		if r, ok := d.GDPRatio.At(p.Year); ok {
			row.PctGDP = &r.Value
		}
		if pc, ok := d.PerCapita.At(p.Year); ok {
			row.PerCapitaEUR = &pc.Value
		}
		rows = append(rows, row)
	}
	return rows
}
