package layout

import (
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths and angles as
// written in settings files ("40px", "12pt", "15deg", "0.25turn").

// Unit represents the original unit of a value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers; lengths default to px, angles to deg
	UnitPX
	UnitPT
	UnitMM
	UnitIN
	UnitDEG
	UnitRAD
	UnitTURN
)

// Conversion constants at the CSS reference density of 96 px per inch.
const (
	PxPerIn = 96.0
	MmPerIn = 25.4
	PtPerIn = 72.0
	PxToMm  = MmPerIn / PxPerIn
	MmToPx  = PxPerIn / MmPerIn
	PtToPx  = PxPerIn / PtPerIn
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	case UnitDEG:
		return "deg"
	case UnitRAD:
		return "rad"
	case UnitTURN:
		return "turn"
	default:
		return ""
	}
}

// Quantity preserves a numeric value with its unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px converts a length to px. Angle units and unknown units return the raw value.
func (q Quantity) Px() float64 {
	switch q.Unit {
	case UnitPT:
		return q.Value * PtToPx
	case UnitMM:
		return q.Value * MmToPx
	case UnitIN:
		return q.Value * PxPerIn
	default:
		return q.Value
	}
}

// Deg converts an angle to degrees. Length units and unknown units return the raw value.
func (q Quantity) Deg() float64 {
	switch q.Unit {
	case UnitRAD:
		return q.Value * 180 / math.Pi
	case UnitTURN:
		return q.Value * 360
	default:
		return q.Value
	}
}

var unitSuffixes = []struct {
	s string
	u Unit
}{
	// "turn" 需在 "rad"/"deg" 之前匹配，"in" 在最后避免误伤
	{"turn", UnitTURN}, {"deg", UnitDEG}, {"rad", UnitRAD},
	{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN},
}

// ParseQuantity parses a number with an optional unit suffix. Malformed input
// yields (0, false) without further validation.
func ParseQuantity(value string) (Quantity, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Quantity{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, false
	}
	return Quantity{Value: f, Unit: unit}, true
}

// ParseLength parses a length and returns it in px.
func ParseLength(value string) (float64, bool) {
	q, ok := ParseQuantity(value)
	if !ok {
		return 0, false
	}
	return q.Px(), true
}

// ParseAngle parses an angle and returns it in degrees.
func ParseAngle(value string) (float64, bool) {
	q, ok := ParseQuantity(value)
	if !ok {
		return 0, false
	}
	return q.Deg(), true
}
