package convert

import (
	"math"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		v         float64
		precision int
		want      string
	}{
		{"default decimals", 1000, DefaultPrecision, "1000.000000"},
		{"rounds for display", 3.2808398950131235, 6, "3.280840"},
		{"no decimals", 2.4, 0, "2"},
		{"negative zero", math.Copysign(0, -1), 2, "0.00"},
		{"tiny negative rounds to zero", -1e-9, 6, "0.000000"},
		{"negative below half a unit", -0.4, 0, "0"},
		{"small negative kept", -0.000001, 6, "-0.000001"},
		{"out of range precision", 1, 99, "1.000000"},
		{"negative precision", 1, -1, "1.000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.v, tt.precision, false); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatGrouped(t *testing.T) {
	got := Format(1234567.5, 2, true)
	if !strings.Contains(got, ",") {
		t.Errorf("Format(grouped) = %q, want thousands separators", got)
	}
	if !strings.HasSuffix(got, ".50") {
		t.Errorf("Format(grouped) = %q, want 2 decimals", got)
	}
}

func TestFormatGroupedTinyNegative(t *testing.T) {
	if got := Format(-1e-12, 3, true); got != "0.000" {
		t.Errorf("Format(-1e-12, grouped) = %q, want %q", got, "0.000")
	}
}
