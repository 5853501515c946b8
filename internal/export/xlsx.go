package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the debt table.
const SheetName = "Debt"

// WriteXLSX writes the header and rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		values := []any{
			r.Year,
			round(r.DebtBnEUR, 1),
			optional(r.PctGDP, 1),
			optional(r.PerCapitaEUR, 0),
			round(r.YoYVariationPct, 1),
			round(r.AssumedRatePct, 1),
			round(r.InterestChargeBnEUR, 1),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// optional returns nil for missing cells so they stay empty.
func optional(v *float64, decimals int) any {
	if v == nil {
		return nil
	}
	return round(*v, decimals)
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
