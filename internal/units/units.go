// Package units converts temperatures for display. Celsius is the only stored
// value; Fahrenheit is always derived on demand.
package units

import "math"

// Unit is the display unit for temperatures
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Symbol returns the unit suffix printed after a temperature
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// String implements fmt.Stringer
func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Toggle returns the other unit
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Round rounds half toward positive infinity (-2.5 -> -2, 2.5 -> 3), the
// rounding every figure on the dashboard uses.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RoundTenth rounds to one decimal place with the same half-up rule
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ToFahrenheit converts a Celsius value and rounds the result
func ToFahrenheit(celsius float64) int {
	return Round(celsius*9/5 + 32)
}

// Convert renders a Celsius value as a whole number in the given unit
func Convert(celsius float64, u Unit) int {
	if u == Fahrenheit {
		return ToFahrenheit(celsius)
	}
	return Round(celsius)
}

// Baseline is the last fetched current temperature. It holds whole degrees
// Celsius, as displayed, and is the single source every unit is derived from.
type Baseline struct {
	celsius int
	set     bool
}

// NewBaseline rounds a raw Celsius reading into a baseline
func NewBaseline(celsius float64) Baseline {
	return Baseline{celsius: Round(celsius), set: true}
}

// Valid reports whether a temperature has been recorded
func (b Baseline) Valid() bool {
	return b.set
}

// Celsius returns the stored value
func (b Baseline) Celsius() int {
	return b.celsius
}

// Display returns the baseline in the requested unit
func (b Baseline) Display(u Unit) int {
	return Convert(float64(b.celsius), u)
}
