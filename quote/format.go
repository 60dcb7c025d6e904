package quote

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter prints prices in a currency.
type Formatter struct {
	Symbol   string // printed before the amount, defaults to the currency grapheme
	Currency string // ISO code
	Decimals int
}

func (f Formatter) formatter() *money.Formatter {
	grapheme := f.Symbol
	if grapheme == "" {
		if c := money.GetCurrency(f.Currency); c != nil {
			grapheme = c.Grapheme
		} else {
			grapheme = f.Currency
		}
	}
	return money.NewFormatter(max(f.Decimals, 0), ".", ",", grapheme, "$ 1")
}

// Money formats v, like "RM 1,234.50".
func (f Formatter) Money(v decimal.Decimal) string {
	minor := v.Shift(int32(max(f.Decimals, 0))).Round(0).IntPart()
	return f.formatter().Format(minor)
}

// Change formats the change of q, like "RM 0.10 (1.23%)" or "-RM 0.10 (-1.23%)".
// It is empty when q has no previous close.
func (f Formatter) Change(q Quote) string {
	abs, pct, ok := q.Change()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s%%)", f.Money(abs), pct.StringFixed(2))
}
