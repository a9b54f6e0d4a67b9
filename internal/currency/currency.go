// Package currency formats monetary amounts for display.
//
// Amounts are computed in full precision everywhere else, rounding only
// happens here.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var (
	million = decimal.New(1, 6)
	billion = decimal.New(1, 9)
)

// Format returns the amount as a full dollar string with grouping,
// e.g. "$1,250.00".
func Format(amount decimal.Decimal) string {
	// Round in decimal space, converting first would lose e.g. .125 to the
	// nearest float below it.
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}

// FormatAbbreviated shortens amounts of a million dollars and above with an
// "M" or "B" suffix, e.g. "$4.123B". Smaller amounts are formatted in full.
func FormatAbbreviated(amount decimal.Decimal) string {
	if amount.GreaterThanOrEqual(billion) {
		return fmt.Sprintf("$%sB", amount.Div(billion).StringFixed(3))
	}

	if amount.GreaterThanOrEqual(million) {
		return fmt.Sprintf("$%sM", amount.Div(million).StringFixed(2))
	}

	return Format(amount)
}

// FormatPercentage returns a percentage with three decimal places,
// e.g. "20.617%".
func FormatPercentage(percentage decimal.Decimal) string {
	return fmt.Sprintf("%s%%", percentage.StringFixed(3))
}
