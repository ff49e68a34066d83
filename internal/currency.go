package internal

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a display currency with its formatting rules.
// Amounts are never converted; only the symbol and grouping change.
type Currency struct {
	Code    string // "JPY", "USD", "EUR"
	unit    currency.Unit
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal.
// x/text renders JPY as the fullwidth ￥ in Japanese; exports use ¥.
var symbolOverrides = map[string]string{
	"JPY": "¥",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// localeForCurrency picks a "home" locale for digit grouping
var localeForCurrency = map[string]language.Tag{
	"JPY": language.Japanese,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"KRW": language.Korean,
	"CNY": language.Chinese,
}

var yen = GetCurrency("JPY")

// GetCurrency returns the Currency for a given code. Unknown codes are
// formatted with the code itself as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "JPY"
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD // fallback unit for number formatting only
	}

	tag, ok := localeForCurrency[code]
	if !ok {
		tag = language.English
	}

	return Currency{
		Code:    code,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}
}

func (c Currency) symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	if _, err := currency.ParseISO(c.Code); err != nil {
		return c.Code
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix reports whether the symbol goes before the amount.
// x/text does not expose CLDR symbol positioning, so this is a fixed list.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "JPY", "USD", "GBP", "CNY", "KRW", "CAD", "AUD", "HKD", "SGD", "NZD":
		return true
	default:
		return false
	}
}

// Number formats an amount rounded to whole units with locale grouping
func (c Currency) Number(amount float64) string {
	return c.printer.Sprint(number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

// Format formats an amount rounded to whole units with the currency symbol
func (c Currency) Format(amount float64) string {
	formatted := c.Number(amount)
	if c.isPrefix() {
		return c.symbol() + formatted
	}
	return formatted + " " + c.symbol()
}

// FormatYen formats an amount as "¥1,490"
func FormatYen(amount float64) string {
	return yen.Format(amount)
}
