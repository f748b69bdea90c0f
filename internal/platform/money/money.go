// Package money formats đồng amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is appended to every formatted amount.
const Symbol = "₫"

var printer = message.NewPrinter(language.Vietnamese)

// VND renders an amount with Vietnamese digit grouping, e.g. "450.000 ₫".
func VND(amount int64) string {
	return printer.Sprintf("%d", amount) + " " + Symbol
}
