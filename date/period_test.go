package date

import (
	"encoding/json"
	"testing"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"quarterly", Quarterly, false},
		{"yearly", Yearly, false},
		{"day", Daily, false},
		{"week", Weekly, false},
		{"Month", Monthly, false},
		{" quarter ", Quarterly, false},
		{"YEAR", Yearly, false},
		{"d", Daily, false},
		{"w", Weekly, false},
		{"m", Monthly, false},
		{"q", Quarterly, false},
		{"y", Yearly, false},
		{"fortnight", Daily, true},
		{"", Daily, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPeriod_String(t *testing.T) {
	for i, name := range Periods() {
		p := Period(i)
		if got := p.String(); got != name {
			t.Errorf("Period(%d).String() = %q, want %q", i, got, name)
		}
		// every canonical name parses back.
		if back, err := ParsePeriod(p.String()); err != nil || back != p {
			t.Errorf("ParsePeriod(%q) = %v, %v, want %v", p, back, err, p)
		}
	}

	unknown := Period(42)
	if unknown.Valid() {
		t.Errorf("Period(42).Valid() = true, want false")
	}
	if got, want := unknown.String(), "Period(42)"; got != want {
		t.Errorf("Period(42).String() = %q, want %q", got, want)
	}
	if _, err := unknown.MarshalText(); err == nil {
		t.Error("Period(42).MarshalText() error = nil, want an error")
	}
}

func TestPeriod_JSON(t *testing.T) {
	var got struct {
		Period Period `json:"period"`
	}
	if err := json.Unmarshal([]byte(`{"period":"quarter"}`), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Period != Quarterly {
		t.Errorf("json.Unmarshal() = %v, want %v", got.Period, Quarterly)
	}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"period":"quarterly"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	if err := json.Unmarshal([]byte(`{"period":"fortnight"}`), &got); err == nil {
		t.Error("json.Unmarshal() of an unknown period: error = nil, want an error")
	}
}
