// Package quote reads the last quote of a symbol from a provider snapshot
// document, and formats it.
//
// Reading a quote never panics and never returns an unusable zero value: the
// Result tells apart a quote, an unknown symbol and a snapshot that could not
// be read yet.
package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Status is the outcome of a quote lookup.
type Status int

const (
	// Found means Result.Quote is set.
	Found Status = iota
	// NotFound means the snapshot has no price for the symbol.
	NotFound
	// TransientError means the snapshot could not be read. Retrying later may succeed.
	TransientError
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case TransientError:
		return "transient error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Quote is the last known price of a symbol.
type Quote struct {
	Symbol        string
	Name          string
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
	HasPrevious   bool
}

// Change returns the change from the previous close, absolute and in percent.
// ok is false without a (non zero) previous close.
func (q Quote) Change() (abs, pct decimal.Decimal, ok bool) {
	if !q.HasPrevious || q.PreviousClose.IsZero() {
		return decimal.Zero, decimal.Zero, false
	}
	abs = q.Price.Sub(q.PreviousClose)
	pct = abs.Div(q.PreviousClose).Mul(decimal.NewFromInt(100))
	return abs, pct, true
}

// Up reports whether the price did not go down since the previous close.
func (q Quote) Up() bool {
	abs, _, _ := q.Change()
	return !abs.IsNegative()
}

// Result of a lookup.
type Result struct {
	Status Status
	Quote  Quote // only when Status is Found
	Err    error // cause of NotFound and TransientError
}

// ErrUnknownSymbol is the cause of a NotFound result.
var ErrUnknownSymbol = errors.New("symbol not in snapshot")

func notFound(symbol string, err error) Result {
	return Result{Status: NotFound, Err: fmt.Errorf("%s: %w", symbol, err)}
}

func transient(err error) Result { return Result{Status: TransientError, Err: err} }

// Decode reads the quote of symbol from a snapshot document.
//
// The document is either an object keyed by symbol,
//
//	{"1155.KL": {"symbol":"1155.KL","longName":"Malayan Banking Berhad","currentPrice":9.86,"previousClose":9.8}}
//
// or a single quote object, possibly wrapped in "info".
func Decode(r io.Reader, symbol string) Result {
	content, err := io.ReadAll(r)
	if err != nil {
		return transient(fmt.Errorf("reading snapshot: %w", err))
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return transient(fmt.Errorf("parsing snapshot: %w", err))
	}

	obj, ok := lookup(doc, symbol)
	if !ok {
		return notFound(symbol, ErrUnknownSymbol)
	}
	price, ok := number(obj, "$.currentPrice")
	if !ok {
		// "regularMarketPrice" is the older name of the field
		if price, ok = number(obj, "$.regularMarketPrice"); !ok {
			return notFound(symbol, errors.New("no current price"))
		}
	}
	q := Quote{Symbol: symbol, Price: price}
	q.PreviousClose, q.HasPrevious = number(obj, "$.previousClose")
	if s, ok := text(obj, "$.symbol"); ok {
		q.Symbol = s
	}
	if s, ok := text(obj, "$.longName"); ok {
		q.Name = s
	} else if s, ok := text(obj, "$.shortName"); ok {
		q.Name = s
	}
	return Result{Status: Found, Quote: q}
}

// LoadFile reads the quote of symbol from the snapshot file at path.
// A missing file is a TransientError: the snapshot may not be produced yet.
func LoadFile(path, symbol string) Result {
	f, err := os.Open(path)
	if err != nil {
		return transient(err)
	}
	defer f.Close()
	return Decode(f, symbol)
}

// lookup finds the quote object of symbol in doc.
func lookup(doc any, symbol string) (map[string]any, bool) {
	for _, path := range []string{fmt.Sprintf("$[%q]", symbol), "$.info", "$"} {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		// a bare object must be the quote of symbol
		if s, ok := text(obj, "$.symbol"); ok && !strings.EqualFold(s, symbol) {
			continue
		}
		if _, ok := obj["currentPrice"]; ok || path != "$" {
			return obj, true
		}
		if _, ok := obj["regularMarketPrice"]; ok {
			return obj, true
		}
	}
	return nil, false
}

// number returns the value at path as a decimal.
func number(obj any, path string) (decimal.Decimal, bool) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return decimal.Zero, false
	}
	var s string
	switch v := v.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// text returns the non empty string at path.
func text(obj any, path string) (string, bool) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
