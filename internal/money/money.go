// Package money formats amounts for display. The upstream merchant UI prices
// in Indonesian rupiah, so display strings follow the id-ID locale.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as a localized rupiah string, e.g.
// "Rp 30.000,00". Amounts are rounded to two decimal places first, matching
// how line totals are displayed.
func FormatIDR(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	return printer.Sprint(currency.Symbol(currency.IDR.Amount(v)))
}
