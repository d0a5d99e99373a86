package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"zero", "0", "$0.00"},
		{"small integer", "5", "$5.00"},
		{"with decimals", "42.5", "$42.50"},
		{"hundreds", "999.99", "$999.99"},
		{"thousands", "1234.56", "$1,234.56"},
		{"millions", "1234567.891", "$1,234,567.89"},
		{"rounds half up", "0.005", "$0.01"},
		{"weekly monthly equivalent", "433.3333333333", "$433.33"},
		{"negative", "-2500.5", "-$2,500.50"},
		{"negative rounds to zero", "-0.001", "$0.00"},
		{"exact thousand", "1000", "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney("$", decimal.RequireFromString(tt.input))
			if got != tt.expect {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatMoney_Symbol(t *testing.T) {
	got := FormatMoney("€", decimal.NewFromInt(1500))
	if got != "€1,500.00" {
		t.Errorf("FormatMoney(€) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"10", "10%"},
		{"7.5", "7.5%"},
		{"3.14159", "3.14%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatPercent(decimal.RequireFromString(tt.input))
			if got != tt.expect {
				t.Errorf("FormatPercent(%s) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
