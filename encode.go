package lots

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// this file contains the trade file format: a JSONL file with one trade per line.
//
//	{"id":"...","date":"2025-01-02","symbol":"AAPL","quantity":10,"price":195.5,"currency":"USD"}
//
// Only date, quantity and price are required.

// jsonTrade is the decoding struct of a single line.
type jsonTrade struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

func (j jsonTrade) trade() Trade {
	return Trade{
		ID:       j.ID,
		Date:     j.Date,
		Symbol:   j.Symbol,
		Quantity: Q(j.Quantity),
		Price:    M(j.Price, j.Currency),
	}
}

// DecodeTrades decodes trades from a stream of JSONL data. Trades are
// returned in the stream order.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var t Trade
		if err := t.UnmarshalJSON(lineBytes); err != nil {
			return nil, fmt.Errorf("line %d: cannot decode trade %q: %w", line, string(lineBytes), err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read trades: %w", err)
	}
	return trades, nil
}

// EncodeTrades writes trades in the canonical JSONL format.
func EncodeTrades(w io.Writer, trades []Trade) error {
	for _, t := range trades {
		data, err := t.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal trade on %s: %w", t.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write trade: %w", err)
		}
	}
	return nil
}

// jsonObject builds a JSON object whose fields keep the order they are
// written in. Decimals are written as bare numbers, with all their digits.
// Its zero value is an empty object.
type jsonObject struct {
	buf bytes.Buffer
	err error
}

func (o *jsonObject) key(k string) {
	if o.buf.Len() > 0 {
		o.buf.WriteByte(',')
	}
	o.buf.WriteString(strconv.Quote(k))
	o.buf.WriteByte(':')
}

// text writes a string field, even when empty.
func (o *jsonObject) text(k, s string) {
	o.value(k, s)
}

// optText writes a string field unless it is empty.
func (o *jsonObject) optText(k, s string) {
	if s != "" {
		o.value(k, s)
	}
}

// number writes a decimal field.
func (o *jsonObject) number(k string, d decimal.Decimal) {
	o.key(k)
	o.buf.WriteString(d.String())
}

// count writes an integer field.
func (o *jsonObject) count(k string, n int) {
	o.key(k)
	o.buf.WriteString(strconv.Itoa(n))
}

// value writes any value marshaled by encoding/json.
func (o *jsonObject) value(k string, v any) {
	if o.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("cannot marshal %q: %w", k, err)
		return
	}
	o.key(k)
	o.buf.Write(data)
}

// bytes returns the object, or the first error met.
func (o *jsonObject) bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	res := make([]byte, 0, o.buf.Len()+2)
	res = append(res, '{')
	res = append(res, o.buf.Bytes()...)
	return append(res, '}'), nil
}

// MarshalJSON writes the trade in the canonical field order.
func (t Trade) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.optText("id", t.ID)
	o.text("date", t.Date)
	o.optText("symbol", t.Symbol)
	o.number("quantity", t.Quantity.value)
	o.number("price", t.Price.value)
	o.optText("currency", t.Price.cur)
	return o.bytes()
}

// UnmarshalJSON reads a trade in the trade file format. Unknown fields are
// rejected: a misspelled "quantity" must not become a zero quantity.
func (t *Trade) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var jt jsonTrade
	if err := dec.Decode(&jt); err != nil {
		return err
	}
	*t = jt.trade()
	return nil
}

func (l Lot) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.text("date", l.Date)
	o.number("quantity", l.Quantity.value)
	o.number("price", l.Price.value)
	return o.bytes()
}

func (d Disposal) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.text("date", d.Date)
	o.text("acquired", d.Acquired)
	o.number("quantity", d.Quantity.value)
	o.number("cost", d.Cost.value)
	o.number("proceeds", d.Proceeds.value)
	o.number("gain", d.Gain().value)
	return o.bytes()
}

// MarshalJSON writes the position with a stable field order. Lots and
// disposals are always arrays, even when empty. Oversold is omitted when zero.
func (p Position) MarshalJSON() ([]byte, error) {
	lots := p.Lots
	if lots == nil {
		lots = []Lot{}
	}
	disposals := p.Disposals
	if disposals == nil {
		disposals = []Disposal{}
	}
	var o jsonObject
	o.optText("currency", p.Currency())
	o.number("realised", p.Realised.value)
	o.number("remaining", p.Remaining.value)
	o.number("averageCost", p.AverageCost.value)
	o.value("lots", lots)
	o.value("disposals", disposals)
	if !p.Oversold.IsZero() {
		o.number("oversold", p.Oversold.value)
	}
	return o.bytes()
}
