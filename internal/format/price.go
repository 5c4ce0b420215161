// Package format renders prices the same way everywhere in the store.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol follows the amount after a no-break space
const CurrencySymbol = "₽"

var printer = message.NewPrinter(language.Russian)

// FormatPrice renders amount as roubles in the ru-RU locale, with up to two
// fraction digits and none when the amount is whole.
func FormatPrice(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	// x/text rounds halves to even, prices round half away from zero
	amount = math.Round(amount*100) / 100

	return printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	)) + "\u00a0" + CurrencySymbol
}
