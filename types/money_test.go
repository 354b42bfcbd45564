package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name    string
		money   Money
		amount  int64
		display string
	}{
		{"BRL", BRL(150075), 150075, "R$ 1500.75"},
		{"Reais", Reais(500), 50000, "R$ 500.00"},
		{"One centavo", BRL(1), 1, "R$ 0.01"},
		{"Zero", Zero(), 0, "R$ 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return Reais(1).Add(Reais(2)) }, Reais(3)},
		{"Subtract", func() Money { return Reais(1000).Subtract(Reais(200)) }, Reais(800)},
		{"Subtract below zero", func() Money { return BRL(100).Subtract(BRL(250)) }, BRL(-150)},
		{"Complex", func() Money {
			return Reais(1000).Subtract(Reais(200)).Subtract(Reais(200)).Add(BRL(50))
		}, BRL(60050)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyOverflow(t *testing.T) {
	tests := []struct {
		name string
		op   func()
	}{
		{"Add", func() { _ = BRL(math.MaxInt64).Add(BRL(1)) }},
		{"Subtract", func() { _ = BRL(math.MinInt64).Subtract(BRL(1)) }},
		{"Subtract min", func() { _ = BRL(0).Subtract(BRL(math.MinInt64)) }},
		{"Reais", func() { _ = Reais(math.MaxInt64) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic for overflow")
				}
			}()
			tt.op()
		})
	}
}

func TestMoneyCheckedAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		want    Money
		wantErr bool
	}{
		{"in range", Reais(1), BRL(50), BRL(150), false},
		{"max", BRL(math.MaxInt64 - 1), BRL(1), BRL(math.MaxInt64), false},
		{"above max", BRL(math.MaxInt64), BRL(1), Money{}, true},
		{"below min", BRL(math.MinInt64), BRL(-1), Money{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.CheckedAdd(tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrAmountOverflow) {
					t.Fatalf("err = %v, want ErrAmountOverflow", err)
				}
				if !got.Equal(tt.a) {
					t.Errorf("receiver value should come back unchanged, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", Reais(500), BRL(50000), false, false, true},
		{"Less", Reais(500), BRL(50001), true, false, false},
		{"Greater", Reais(501), Reais(500), false, true, false},
		{"Zero equal", BRL(0), Zero(), false, false, true},
		{"Negative less", BRL(-100), BRL(100), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneyPredicates(t *testing.T) {
	tests := []struct {
		name       string
		money      Money
		isZero     bool
		isPositive bool
		isNegative bool
	}{
		{"Zero", BRL(0), true, false, false},
		{"Positive", BRL(100), false, true, false},
		{"Negative", BRL(-500), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.IsZero(); got != tt.isZero {
				t.Errorf("IsZero: got %v, want %v", got, tt.isZero)
			}
			if got := tt.money.IsPositive(); got != tt.isPositive {
				t.Errorf("IsPositive: got %v, want %v", got, tt.isPositive)
			}
			if got := tt.money.IsNegative(); got != tt.isNegative {
				t.Errorf("IsNegative: got %v, want %v", got, tt.isNegative)
			}
		})
	}
}

func TestMoneyFormatMajor(t *testing.T) {
	tests := []struct {
		money    Money
		expected string
	}{
		{BRL(4900), "49.00"},
		{BRL(100), "1.00"},
		{BRL(1), "0.01"},
		{BRL(0), "0.00"},
		{BRL(-4900), "-49.00"},
		{BRL(-1), "-0.01"},
		{BRL(math.MinInt64), "-92233720368547758.08"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.expected {
				t.Errorf("FormatMajor: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    Money
		wantErr error
	}{
		{"1000", Reais(1000), nil},
		{"1500.75", BRL(150075), nil},
		{"0.5", BRL(50), nil},
		{" 200.00 ", Reais(200), nil},
		{"150,25", BRL(15025), nil},
		{"-5", Reais(-5), nil},
		{"0.001", Zero(), ErrSubCentPrecision},
		{"10.999", Zero(), ErrSubCentPrecision},
		{"", Zero(), ErrInvalidMoney},
		{"abc", Zero(), ErrInvalidMoney},
		{"99999999999999999999", Zero(), ErrAmountOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMoney(%q): got err %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q): unexpected error %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseMoney(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyDecimalRoundTrip(t *testing.T) {
	m := BRL(123456)
	if got := m.Decimal(); !got.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("Decimal: got %s, want 1234.56", got)
	}

	back, err := FromDecimal(m.Decimal())
	if err != nil {
		t.Fatalf("FromDecimal: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("round-trip: got %v, want %v", back, m)
	}
}

func TestMoneyJSON(t *testing.T) {
	m := BRL(4900)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	expected := `{"amount":4900,"display":"R$ 49.00"}`
	if string(data) != expected {
		t.Errorf("JSON: got %s, want %s", string(data), expected)
	}

	var result Money
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !result.Equal(m) {
		t.Errorf("Unmarshaled: got %v, want %v", result, m)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []Money
		expected Money
	}{
		{"Empty", []Money{}, Zero()},
		{"Single", []Money{BRL(100)}, BRL(100)},
		{"Multiple", []Money{BRL(100), BRL(200), BRL(300)}, BRL(600)},
		{"With negatives", []Money{BRL(100), BRL(-50), BRL(200)}, BRL(250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sum(tt.values...)
			if !result.Equal(tt.expected) {
				t.Errorf("Sum: got %v, want %v", result, tt.expected)
			}
		})
	}
}

func BenchmarkMoneyString(b *testing.B) {
	m := BRL(4900)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.String()
	}
}
