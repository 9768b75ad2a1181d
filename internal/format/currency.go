// Package format renders listing prices and WhatsApp contact links.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "Rp "

	// ContactForPrice is shown when a listing carries no price at all.
	ContactForPrice = "Hubungi untuk harga"
)

var printer = message.NewPrinter(language.Indonesian)

// Currency formats a rupiah amount without decimals, e.g. "Rp 1.500.000".
// Amounts are rounded half away from zero.
func Currency(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0).IntPart()
	return currencySymbol + printer.Sprintf("%d", rounded)
}

// CurrencyRange formats a price range with an optional unit suffix.
// A nil bound is treated as absent.
func CurrencyRange(from, to *float64, unit string) string {
	suffix := ""
	if unit != "" {
		suffix = " /" + unit
	}

	switch {
	case from == nil && to == nil:
		return ContactForPrice
	case from != nil && to != nil:
		return Currency(*from) + " - " + Currency(*to) + suffix
	case from != nil:
		return Currency(*from) + suffix
	default:
		return Currency(*to) + suffix
	}
}
