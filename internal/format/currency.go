package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money amounts with locale digit grouping.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-MX")
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Currency formats an optional amount as pesos. A nil, NaN or infinite
// amount renders as zero.
func (f *Formatter) Currency(amount *float64) string {
	value := 0.0
	if amount != nil && !math.IsNaN(*amount) && !math.IsInf(*amount, 0) {
		value = *amount
	}
	return f.Amount(value)
}

func (f *Formatter) Amount(value float64) string {
	if value < 0 {
		return "-$" + f.printer.Sprintf("%.2f", -value)
	}
	return "$" + f.printer.Sprintf("%.2f", value)
}

var defaultFormatter = NewFormatter("es-MX")

// Currency formats with the es-MX locale.
func Currency(amount *float64) string {
	return defaultFormatter.Currency(amount)
}
