// Package format renders figures for human readers.
//
// Numbers are grouped and punctuated for a locale (fr-FR by default) and
// carry at most the requested number of fraction digits.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured or it does not parse.
const DefaultLocale = "fr-FR"

// Euro sign preceded by a no-break space, as fr-FR writes amounts.
const euroSuffix = "\u00a0€"

// Formatter formats numbers for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for a BCP 47 locale. An invalid locale falls back
// to DefaultLocale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

var defaultFormatter = New(DefaultLocale)

// Default returns the fr-FR Formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats v with grouping and at most decimals fraction digits.
func (f *Formatter) Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(decimals)))
}

// Currency formats a euro amount.
func (f *Formatter) Currency(v float64, decimals int) string {
	return f.Number(v, decimals) + euroSuffix
}

// Billions formats a euro amount in billions ("3 250 Md€").
func (f *Formatter) Billions(v float64, decimals int) string {
	return f.Number(v/1e9, decimals) + " Md€"
}

// Percent formats a percentage with a fixed number of decimals ("112.2%").
func Percent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// SignedPercent is Percent with a leading "+" for positive values.
func SignedPercent(v float64, decimals int) string {
	s := Percent(v, decimals)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Points formats a change in percentage points ("+1.6 pts").
func Points(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f pts", decimals, v)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Plain strips locale grouping spaces from a formatted number. Useful where
// the output is parsed back, as in tests or spreadsheets.
func Plain(s string) string {
	return strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
}
