package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rickgao/debtwatch/internal/format"
)

// utf8BOM helps spreadsheet tools recognize UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures CSV writing.
type CSVOptions struct {
	BOMPrefix bool              // Add UTF-8 BOM for Excel compatibility
	Human     *format.Formatter // Locale-formatted cells instead of plain numbers
	Comma     rune              // Field separator (default: ',')
}

// WriteCSV writes the header and rows to w.
func WriteCSV(w io.Writer, rows []Row, opts CSVOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if opts.Comma != 0 {
		writer.Comma = opts.Comma
	}

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cells := plainCells
	if opts.Human != nil {
		cells = humanCells(opts.Human)
	}

	for i, row := range rows {
		if err := writer.Write(cells(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func plainCells(r Row) []string {
	return []string{
		strconv.Itoa(r.Year),
		formatFloat(r.DebtBnEUR, 1),
		formatOptional(r.PctGDP, 1),
		formatOptional(r.PerCapitaEUR, 0),
		formatFloat(r.YoYVariationPct, 1),
		formatFloat(r.AssumedRatePct, 1),
		formatFloat(r.InterestChargeBnEUR, 1),
	}
}

func humanCells(f *format.Formatter) func(Row) []string {
	return func(r Row) []string {
		cells := []string{
			strconv.Itoa(r.Year),
			f.Number(r.DebtBnEUR, 1),
			"",
			"",
			format.SignedPercent(r.YoYVariationPct, 1),
			format.Percent(r.AssumedRatePct, 1),
			f.Number(r.InterestChargeBnEUR, 1),
		}
		if r.PctGDP != nil {
			cells[2] = format.Percent(*r.PctGDP, 1)
		}
		if r.PerCapitaEUR != nil {
			cells[3] = f.Currency(*r.PerCapitaEUR, 0)
		}
		return cells
	}
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatOptional(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v, decimals)
}
