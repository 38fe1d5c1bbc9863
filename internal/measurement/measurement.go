package measurement

import (
	"math"
	"strconv"
	"strings"
)

// Measurement is an immutable amount/unit pair.
type Measurement struct {
	amount float64
	unit   Unit
}

// New creates a measurement; unit may be None.
func New(amount float64, unit Unit) Measurement {
	return Measurement{amount: amount, unit: unit}
}

// Amount returns the numeric amount
func (m Measurement) Amount() float64 {
	return m.amount
}

// Unit returns the unit, None when unitless
func (m Measurement) Unit() Unit {
	return m.unit
}

// Scale multiplies the amount by factor and rounds the result according to the
// unit's class. Unitless measurements are not rounded.
func (m Measurement) Scale(factor float64) Measurement {
	return Measurement{amount: smartRound(m.amount*factor, m.unit), unit: m.unit}
}

func smartRound(v float64, u Unit) float64 {
	switch {
	case u == None:
		return v
	case u == Teaspoon || u == Tablespoon:
		return roundTo(v, 0.25)
	case u == Cup:
		return roundTo(v, 0.125)
	case u.Class() == ClassCount:
		return math.Round(v)
	case u.Class() == ClassVolume || u.Class() == ClassWeight:
		if v < 10 {
			return roundTo(v, 0.5)
		}
		return math.Round(v)
	default:
		return v
	}
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}

// Format renders the amount with at most two decimals followed by the unit code.
func (m Measurement) Format() string {
	// half-up, FormatFloat alone would round 1.125 to 1.12
	s := strconv.FormatFloat(math.Round(m.amount*100)/100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	if m.unit == None {
		return s
	}
	return s + " " + string(m.unit)
}

func (m Measurement) String() string {
	return m.Format()
}
