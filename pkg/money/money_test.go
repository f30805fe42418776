package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"20", "20"},
		{"0.125", "0.13"},
	}
	for _, tt := range tests {
		if got := Round2(dec(tt.in)); !got.Equal(dec(tt.want)) {
			t.Fatalf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(dec("5.00"), 4); !got.Equal(dec("20.00")) {
		t.Fatalf("unexpected line total %s", got)
	}
	if got := LineTotal(dec("2.505"), 3); !got.Equal(dec("7.52")) {
		t.Fatalf("unexpected line total %s", got)
	}
}

func TestTaxAmount(t *testing.T) {
	if got := TaxAmount(dec("20.00"), dec("10")); !got.Equal(dec("2.00")) {
		t.Fatalf("unexpected tax %s", got)
	}
	if got := TaxAmount(dec("99.99"), dec("8.25")); !got.Equal(dec("8.25")) {
		t.Fatalf("unexpected tax %s", got)
	}
}

func TestChangeDueFloorsAtZero(t *testing.T) {
	if got := ChangeDue(dec("25.00"), dec("22.00")); !got.Equal(dec("3.00")) {
		t.Fatalf("unexpected change %s", got)
	}
	if got := ChangeDue(dec("10.00"), dec("22.00")); !got.IsZero() {
		t.Fatalf("change must never be negative, got %s", got)
	}
}
