package lots

import (
	"slices"
	"testing"
)

func TestParseSide(t *testing.T) {
	testCases := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"buy", Buy, false},
		{" BOT ", Buy, false},
		{"Sell", Sell, false},
		{"SLD", Sell, false},
		{"short", None, true},
	}
	for _, tc := range testCases {
		got, err := ParseSide(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSide(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseSide(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTrade_Side(t *testing.T) {
	if got := tr(1, 1).Side(); got != Buy {
		t.Errorf("Side() = %v, want %v", got, Buy)
	}
	if got := NewSell("", "", 3, 1, "").Side(); got != Sell {
		t.Errorf("Side() = %v, want %v", got, Sell)
	}
	if got := tr(0, 1).Side(); got != None {
		t.Errorf("Side() = %v, want %v", got, None)
	}
}

func TestTrade_Amount(t *testing.T) {
	if got := NewSell("", "", 3, 10, "USD").Amount(); !got.Equal(USD(-30)) {
		t.Errorf("Amount() = %v, want %v", got, USD(-30))
	}
}

func TestSplitBySymbol(t *testing.T) {
	trades := []Trade{
		NewBuy("d1", "MSFT", 1, 1, ""),
		NewBuy("d2", "AAPL", 1, 1, ""),
		NewSell("d3", "MSFT", 1, 2, ""),
	}
	groups, symbols := SplitBySymbol(trades)
	if want := []string{"AAPL", "MSFT"}; !slices.Equal(symbols, want) {
		t.Errorf("SplitBySymbol() symbols = %v, want %v", symbols, want)
	}
	msft := groups["MSFT"]
	if len(msft) != 2 || msft[0].Date != "d1" || msft[1].Date != "d3" {
		t.Errorf("SplitBySymbol()[MSFT] = %v, want d1 then d3", msft)
	}
}

func TestWithCurrency(t *testing.T) {
	trades := []Trade{tr(1, 10), NewBuy("", "", 1, 10, "EUR")}
	got := WithCurrency(trades, "USD")
	if got[0].Price.Currency() != "USD" || got[1].Price.Currency() != "EUR" {
		t.Errorf("WithCurrency() = %v, want USD then EUR", got)
	}
	if trades[0].Price.Currency() != "" {
		t.Errorf("WithCurrency() modified its input: %v", trades)
	}
}

func TestSelectSymbol(t *testing.T) {
	trades := []Trade{
		NewBuy("d1", "MSFT", 1, 1, ""),
		NewBuy("d2", "AAPL", 1, 1, ""),
	}
	got, symbol, err := SelectSymbol(trades, "AAPL")
	if err != nil || symbol != "AAPL" || len(got) != 1 || got[0].Date != "d2" {
		t.Errorf("SelectSymbol(AAPL) = %v, %q, %v", got, symbol, err)
	}
	if _, _, err := SelectSymbol(trades, ""); err == nil {
		t.Error("SelectSymbol() error = nil, want an error for several symbols")
	}
	if _, _, err := SelectSymbol(trades, "NVDA"); err == nil {
		t.Error("SelectSymbol(NVDA) error = nil, want an error for an unknown symbol")
	}
	got, symbol, err = SelectSymbol(trades[:1], "")
	if err != nil || symbol != "MSFT" || len(got) != 1 {
		t.Errorf("SelectSymbol() = %v, %q, %v, want the only symbol", got, symbol, err)
	}
}
