package convert

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats/scalar"
)

// Currency codes with a rate in the book. USD is the pivot.
const (
	USD = "USD"
	IDR = "IDR"
	JPY = "JPY"
	KRW = "KRW"
)

// Currencies lists the supported codes in display order.
var Currencies = []string{USD, IDR, JPY, KRW}

// ErrUnknownCurrency is returned for codes outside Currencies.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates maps a currency code to units per USD.
type Rates map[string]float64

// DefaultRates returns the built-in rates.
func DefaultRates() Rates {
	return Rates{USD: 1, IDR: 15000, JPY: 150, KRW: 1300}
}

// perUSD returns the rate for a supported code. USD is 1, as is a missing
// or non-positive rate. ok is false for codes outside Currencies.
func (r Rates) perUSD(code string) (float64, bool) {
	if !IsCurrency(code) {
		return 0, false
	}
	if code == USD {
		return 1, true
	}
	return SanitizeRate(r[code]), true
}

// ConvertCurrency converts value from one currency to another through USD.
// An unknown source is worth 0 USD and an unknown target converts to 0.
func ConvertCurrency(value float64, from, to string, rates Rates) float64 {
	fromRate, ok := rates.perUSD(from)
	if !ok {
		return 0
	}
	toRate, ok := rates.perUSD(to)
	if !ok {
		return 0
	}
	return value / fromRate * toRate
}

// FormatCurrency renders v for the currency panel: USD with two decimals,
// everything else rounded to whole units. An unknown code renders as "".
func FormatCurrency(code string, v float64) string {
	if !IsCurrency(code) {
		return ""
	}
	digits := 0
	if code == USD {
		digits = 2
	}
	r := scalar.Round(v, digits)
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', digits, 64)
}

// IsCurrency reports whether code is supported.
func IsCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// SanitizeRate applies the rate-editing rule: anything that is not a
// positive finite number becomes 1.
func SanitizeRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

// ParseRate reads a rate typed into a form field, falling back to 1.
func ParseRate(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return SanitizeRate(v)
}

// RateBook is the shared, editable set of exchange rates.
type RateBook struct {
	mu    sync.RWMutex
	rates Rates
}

// NewRateBook creates a book seeded with rates. Missing codes take the
// built-in defaults and every value is sanitized.
func NewRateBook(rates Rates) *RateBook {
	b := &RateBook{rates: DefaultRates()}
	for code, v := range rates {
		if code == USD || !IsCurrency(code) {
			continue
		}
		b.rates[code] = SanitizeRate(v)
	}
	return b
}

// Snapshot returns a copy of the current rates.
func (b *RateBook) Snapshot() Rates {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(Rates, len(b.rates))
	for k, v := range b.rates {
		out[k] = v
	}
	return out
}

// Get returns the rate for code.
func (b *RateBook) Get(code string) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.rates[code]
	return v, ok
}

// Set edits one rate. USD is fixed and cannot be set.
func (b *RateBook) Set(code string, v float64) (float64, error) {
	code = strings.ToUpper(code)
	if !IsCurrency(code) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	if code == USD {
		return 0, fmt.Errorf("USD rate is fixed at 1")
	}

	v = SanitizeRate(v)
	b.mu.Lock()
	b.rates[code] = v
	b.mu.Unlock()
	return v, nil
}

// Update edits several rates at once. Either all codes are valid and every
// rate is applied, or nothing changes.
func (b *RateBook) Update(rates Rates) (Rates, error) {
	clean := make(Rates, len(rates))
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		upper := strings.ToUpper(code)
		if !IsCurrency(upper) || upper == USD {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
		clean[upper] = SanitizeRate(rates[code])
	}

	b.mu.Lock()
	for code, v := range clean {
		b.rates[code] = v
	}
	b.mu.Unlock()
	return b.Snapshot(), nil
}

// Convert converts value with the current rates.
func (b *RateBook) Convert(value float64, from, to string) float64 {
	return ConvertCurrency(value, from, to, b.Snapshot())
}

// CurrencyRow is one row of the currency panel.
type CurrencyRow struct {
	Code    string  `json:"code"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// All converts value from one currency into every supported currency.
func (b *RateBook) All(value float64, from string) []CurrencyRow {
	rates := b.Snapshot()
	out := make([]CurrencyRow, 0, len(Currencies))
	for _, code := range Currencies {
		v := ConvertCurrency(value, from, code, rates)
		out = append(out, CurrencyRow{Code: code, Value: v, Display: FormatCurrency(code, v)})
	}
	return out
}
