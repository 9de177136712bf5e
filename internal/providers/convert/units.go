package convert

import "github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"

// Unit is one entry of a scale table.
type Unit struct {
	Code   string  `json:"value"`
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

// Scale is an ordered unit table with a base unit of factor 1.
type Scale struct {
	Name  string `json:"name"`
	Base  string `json:"base"`
	Units []Unit `json:"units"`

	index map[string]float64
}

func newScale(name, base string, units []Unit) *Scale {
	idx := make(map[string]float64, len(units))
	for _, u := range units {
		idx[u.Code] = u.Factor
	}
	return &Scale{Name: name, Base: base, Units: units, index: idx}
}

// Factor returns the base-unit multiple of code, or 1 for unknown codes.
func (s *Scale) Factor(code string) float64 {
	if f, ok := s.index[code]; ok {
		return f
	}
	return 1
}

// Known reports whether code is in the table.
func (s *Scale) Known(code string) bool {
	_, ok := s.index[code]
	return ok
}

// Convert scales value from one unit to another through the base unit.
func (s *Scale) Convert(value float64, from, to string) float64 {
	return value * s.Factor(from) / s.Factor(to)
}

// Codes lists unit codes in display order.
func (s *Scale) Codes() []string {
	codes := make([]string, len(s.Units))
	for i, u := range s.Units {
		codes[i] = u.Code
	}
	return codes
}

// Length is metric kilo through milli plus inch and foot, based on meters.
var Length = newScale("length", "m", []Unit{
	{"km", "Kilometer (km)", 1000},
	{"hm", "Hectometer (hm)", 100},
	{"dam", "Decameter (dam)", 10},
	{"m", "Meter (m)", 1},
	{"dm", "Decimeter (dm)", 0.1},
	{"cm", "Centimeter (cm)", 0.01},
	{"mm", "Millimeter (mm)", 0.001},
	{"in", "Inch (in)", 0.0254},
	{"ft", "Feet (ft)", 0.3048},
})

// Weight is metric kilo through milli plus pound and ounce, based on kilograms.
var Weight = newScale("weight", "kg", []Unit{
	{"kg", "Kilogram (kg)", 1},
	{"hg", "Hectogram (hg)", 0.1},
	{"dag", "Decagram (dag)", 0.01},
	{"g", "Gram (g)", 0.001},
	{"dg", "Decigram (dg)", 0.0001},
	{"cg", "Centigram (cg)", 0.00001},
	{"mg", "Milligram (mg)", 0.000001},
	{"lb", "Pound (lb)", 0.45359237},
	{"oz", "Ounce (oz)", 0.0283495231},
})

// ConvertLength converts value between length units.
func ConvertLength(value float64, from, to string) float64 {
	return Length.Convert(value, from, to)
}

// ConvertWeight converts value between weight units.
func ConvertWeight(value float64, from, to string) float64 {
	return Weight.Convert(value, from, to)
}

// Conversion is one row of a converter panel.
type Conversion struct {
	Unit    string  `json:"unit"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// All converts value from one unit into every unit of the table, formatted
// the way the length and weight panels show them.
func (s *Scale) All(value float64, from string) []Conversion {
	out := make([]Conversion, 0, len(s.Units))
	for _, u := range s.Units {
		v := s.Convert(value, from, u.Code)
		out = append(out, Conversion{Unit: u.Code, Label: u.Label, Value: v, Display: numfmt.Smart(v)})
	}
	return out
}
