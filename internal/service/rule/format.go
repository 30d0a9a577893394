package rule

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// money renders an amount as "$75,000.00".
func money(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// percent renders a ratio with two decimals, 0.12 as "12.00%".
func percent(ratio float64) string {
	return printer.Sprintf("%.2f%%", ratio*100)
}

// percent1 renders a ratio with one decimal, 0.85 as "85.0%".
func percent1(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// outcome summarises violations for an audit entry.
func outcome(violations []string, ok string) string {
	if len(violations) == 0 {
		return ok
	}
	return strings.Join(violations, "; ")
}
