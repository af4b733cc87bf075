package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.344, 12.34},
		{12.345, 12.35},
		{12.0, 12.0},
		{-12.345, -12.35},
		{0.005, 0.01},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundCash(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.32, 12.30},
		{12.33, 12.35},
		{12.375, 12.40},
		{12.00, 12.00},
		{-0.02, 0},
		{-0.03, -0.05},
	}
	for _, tt := range tests {
		if got := RoundCash(tt.in); got != tt.want {
			t.Errorf("RoundCash(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCHF(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{80, "80.00"},
		{1234.5, "1'234.50"},
		{12345.678, "12'345.68"},
		{1234567.89, "1'234'567.89"},
		{-9876.5, "-9'876.50"},
	}
	for _, tt := range tests {
		if got := FormatCHF(tt.in); got != tt.want {
			t.Errorf("FormatCHF(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
