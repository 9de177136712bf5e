package convert

import "github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"

// ToFahrenheit converts Celsius to Fahrenheit.
func ToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// ToKelvin converts Celsius to Kelvin.
func ToKelvin(c float64) float64 { return c + 273.15 }

// ToReaumur converts Celsius to Réaumur.
func ToReaumur(c float64) float64 { return c * 0.8 }

// Temperatures is the temperature panel for one Celsius reading.
type Temperatures struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit string  `json:"fahrenheit"`
	Kelvin     string  `json:"kelvin"`
	Reaumur    string  `json:"reaumur"`
}

// Temperature converts c to all three scales with two decimals.
func Temperature(c float64) Temperatures {
	return Temperatures{
		Celsius:    c,
		Fahrenheit: numfmt.Fixed(ToFahrenheit(c), 2),
		Kelvin:     numfmt.Fixed(ToKelvin(c), 2),
		Reaumur:    numfmt.Fixed(ToReaumur(c), 2),
	}
}
