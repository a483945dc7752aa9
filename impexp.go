package lots

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains the importers from broker and spreadsheet exports.
// Importers keep the order found in the source: the engine never sorts trades.
// Every imported trade gets a fresh ID if the source does not provide one.

// ImportCSV imports trades from a CSV file with a header line.
//
// Recognized columns are (case insensitive) "date", "quantity", "price",
// and optionally "symbol", "side", "currency", "id". When "side" is set
// ("buy" or "sell") the sign of the quantity is taken from it.
func ImportCSV(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	cols := columns(header, strings.ToLower)
	for _, required := range []string{"date", "quantity", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column %q in header %q", required, header)
		}
	}

	var trades []Trade
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		qty, err := parseNumber(get("quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity: %w", line, err)
		}
		price, err := parseNumber(get("price"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		if s := get("side"); s != "" {
			side, err := ParseSide(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			qty = qty.Abs()
			if side == Sell {
				qty = qty.Neg()
			}
		}
		t := Trade{
			ID:       get("id"),
			Date:     get("date"),
			Symbol:   get("symbol"),
			Quantity: Q(qty),
			Price:    M(price, strings.ToUpper(get("currency"))),
		}
		trades = append(trades, t.withID())
	}
	return trades, nil
}

// IBKR activity statement columns read by ImportIBKR.
const (
	ibkrSection       = "Trades"
	ibkrDiscriminator = "DataDiscriminator"
	ibkrSymbol        = "Symbol"
	ibkrCurrency      = "Currency"
	ibkrDateTime      = "Date/Time"
	ibkrQuantity      = "Quantity"
	ibkrPrice         = "T. Price"
)

// ImportIBKR imports the executions listed in the "Trades" section of an
// Interactive Brokers activity statement (CSV export).
//
// The section is made of "Trades,Header,..." lines giving the column names
// and "Trades,Data,Order,..." lines, one per execution. Sub totals and
// totals are ignored. The date part of "Date/Time" is used as the trade date.
func ImportIBKR(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		trades []Trade
		header []string
		cols   map[string]int
		found  bool
	)
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 2 || strings.TrimSpace(record[0]) != ibkrSection {
			continue
		}

		switch strings.TrimSpace(record[1]) {
		case "Header":
			header = record[2:]
			cols = columns(header, strings.TrimSpace)
			for _, required := range []string{ibkrSymbol, ibkrDateTime, ibkrQuantity, ibkrPrice} {
				if _, ok := cols[required]; !ok {
					return nil, fmt.Errorf("line %d: missing column %q in Trades header", line, required)
				}
			}
			found = true
		case "Data":
			if header == nil {
				continue
			}
			fields := record[2:]
			if len(fields) != len(header) {
				log.Printf("warning: line %d: skipping trade with mismatched columns (%d vs %d)", line, len(fields), len(header))
				continue
			}
			get := func(name string) string {
				i, ok := cols[name]
				if !ok {
					return ""
				}
				return strings.TrimSpace(fields[i])
			}
			if d, ok := cols[ibkrDiscriminator]; ok && strings.TrimSpace(fields[d]) != "Order" {
				continue
			}

			qty, err := parseNumber(get(ibkrQuantity))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid quantity: %w", line, err)
			}
			price, err := parseNumber(get(ibkrPrice))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
			}
			on, _, _ := strings.Cut(get(ibkrDateTime), ",")
			t := Trade{
				Date:     strings.TrimSpace(on),
				Symbol:   get(ibkrSymbol),
				Quantity: Q(qty),
				Price:    M(price, get(ibkrCurrency)),
			}
			trades = append(trades, t.withID())
		}
	}
	if !found {
		return nil, fmt.Errorf("no %q section found in statement", ibkrSection)
	}
	return trades, nil
}

// ImportJSON imports trades from an arbitrary JSON document. The JSONPath
// expression path selects the array of trade objects ("$" if empty).
//
// Each object is read with the keys "date", "quantity", "price" and
// optionally "symbol", "currency", "id". Numbers can be JSON numbers or
// numeric strings.
func ImportJSON(r io.Reader, path string) ([]Trade, error) {
	if path == "" {
		path = "$"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON document: %w", err)
	}

	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	var items []any
	switch v := selected.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("%q does not select trade objects but %T", path, selected)
	}

	trades := make([]Trade, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item #%d: want a trade object, got %T", i+1, item)
		}
		qty, err := jsonDecimal(obj["quantity"])
		if err != nil {
			return nil, fmt.Errorf("item #%d: invalid quantity: %w", i+1, err)
		}
		price, err := jsonDecimal(obj["price"])
		if err != nil {
			return nil, fmt.Errorf("item #%d: invalid price: %w", i+1, err)
		}
		t := Trade{
			ID:       jsonString(obj["id"]),
			Date:     jsonString(obj["date"]),
			Symbol:   jsonString(obj["symbol"]),
			Quantity: Q(qty),
			Price:    M(price, jsonString(obj["currency"])),
		}
		trades = append(trades, t.withID())
	}
	return trades, nil
}

// columns indexes header names, normalized by norm.
func columns(header []string, norm func(string) string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(norm(h))] = i
	}
	return cols
}

// parseNumber parses a decimal number, allowing thousands separators.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, errors.New("empty number")
	}
	return decimal.NewFromString(s)
}

func jsonDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return parseNumber(n)
	case nil:
		return decimal.Decimal{}, errors.New("missing value")
	default:
		return decimal.Decimal{}, fmt.Errorf("want a number, got %T", v)
	}
}

func jsonString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}
