package dashboard

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as US dollars with grouping, e.g.
// "$12,345.67".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	value := number.Decimal(math.Abs(amount),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	)
	return printer.Sprintf("%s$%v", sign, value)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an API date string as "Jan 2, 2006". Unparseable input
// is returned untouched.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

// TypeIcon returns the glyph shown next to a transaction.
func TypeIcon(txType string) string {
	if txType == "credit" {
		return "📈"
	}
	return "📉"
}

// TypeClass returns the CSS class colouring a transaction amount.
func TypeClass(txType string) string {
	if txType == "credit" {
		return "amount-credit"
	}
	return "amount-debit"
}
