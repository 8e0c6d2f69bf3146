package layout

import (
	"math"
	"testing"
)

// TestPxMmRoundTrip 验证 px↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPxMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 40, 96, 600, 1200}
	for _, px := range samples {
		mm := px * PxToMm
		back := mm * MmToPx
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%gpx mm=%g back=%g diff=%g", px, mm, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"40", 40, true},
		{"40px", 40, true},
		{"-120px", -120, true},
		{"12pt", 16, true},
		{"25.4mm", 96, true},
		{"1in", 96, true},
		{" 3.5 PX ", 3.5, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseLength(%q) = %g, %v; want %g, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"15", 15},
		{"15deg", 15},
		{"-720deg", -720},
		{"0.25turn", 90},
		{"3.141592653589793rad", 180},
	}
	for _, tt := range tests {
		got, ok := ParseAngle(tt.in)
		if !ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseAngle(%q) = %g, %v; want %g", tt.in, got, ok, tt.want)
		}
	}
}

func TestUnitToString(t *testing.T) {
	if UnitToString(UnitTURN) != "turn" || UnitToString(UnitNone) != "" || UnitToString(UnitPX) != "px" {
		t.Fatalf("unexpected unit strings")
	}
}
