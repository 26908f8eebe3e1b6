package model

import (
	"testing"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  int64
	}{
		{"exact", 100.0, 100},
		{"round down", 49.4, 49},
		{"round up", 49.6, 50},
		{"half away from zero", 49.5, 50},
		{"negative half away from zero", -49.5, -50},
		{"zero", 0, 0},
		{"large", 123456789.5, 123456790},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundCents(tt.input)
			if got != tt.want {
				t.Errorf("RoundCents(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"whole dollars", 5000, "50.00"},
		{"with cents", 599, "5.99"},
		{"single digit cents", 1005, "10.05"},
		{"zero", 0, "0.00"},
		{"under a dollar", 50, "0.50"},
		{"negative", -150, "-1.50"},
		{"large value", 123456789, "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCents(tt.input)
			if got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"whole number", "99.00", 9900},
		{"with cents", "123.45", 12345},
		{"zero", "0.00", 0},
		{"empty string", "", 0},
		{"large value", "1234567.89", 123456789},
		{"no decimals", "100", 10000},
		{"one decimal", "99.9", 9990},
		{"small value", "0.01", 1},
		{"invalid string", "abc", 0},
		{"negative (unusual)", "-10.00", -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCents(tt.input)
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// FormatCents and ParseCents are inverses for non-negative amounts.
func TestFormatParseRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 599, 5000, 123456789} {
		if got := ParseCents(FormatCents(cents)); got != cents {
			t.Errorf("ParseCents(FormatCents(%d)) = %d", cents, got)
		}
	}
}
