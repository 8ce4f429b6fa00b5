package document

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyCode moneda fija de las facturas.
const CurrencyCode = "ZAR"

const (
	currencySymbol = "R"
	dateLayout     = "January 2, 2006"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency redondea a 2 decimales y agrupa miles: 27500 -> "R 27,500.00".
// El cálculo previo se mantiene exacto; sólo aquí se redondea.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).StringFixed(2) // "0.50"
	return sign + currencySymbol + " " + printer.Sprintf("%d", whole) + cents[1:]
}

// FormatDate fecha larga en inglés: "March 5, 2025".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatQuantity cantidad sin ceros sobrantes: 40 -> "40", 1.50 -> "1.5".
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}
