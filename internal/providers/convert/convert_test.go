package convert

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{1, "km", "m", 1000},
		{100, "cm", "m", 1},
		{1, "m", "cm", 100},
		{2, "ft", "in", 2 * 0.3048 / 0.0254},
		{5, "dam", "dm", 500},
		{3, "parsec", "m", 3},
		{3, "m", "parsec", 3},
	}
	for _, tt := range tests {
		got := ConvertLength(tt.value, tt.from, tt.to)
		assert.InDelta(t, tt.want, got, 1e-9, "%v %s -> %s", tt.value, tt.from, tt.to)
	}
}

func TestConvertLengthRoundTrip(t *testing.T) {
	for _, from := range Length.Codes() {
		for _, to := range Length.Codes() {
			back := ConvertLength(ConvertLength(100, from, to), to, from)
			assert.True(t, scalar.EqualWithinAbs(back, 100, 1e-9), "%s <-> %s: %v", from, to, back)
		}
	}
	assert.InDelta(t, 100, ConvertLength(ConvertLength(100, "m", "cm"), "cm", "m"), 1e-9)
}

func TestConvertWeight(t *testing.T) {
	assert.InDelta(t, 1, ConvertWeight(1000, "g", "kg"), 1e-12)
	assert.InDelta(t, 1000, ConvertWeight(1, "kg", "g"), 1e-9)
	assert.InDelta(t, 0.45359237/0.001, ConvertWeight(1, "lb", "g"), 1e-9)
	assert.InDelta(t, 16, ConvertWeight(1, "lb", "oz"), 1e-6)
	assert.Equal(t, 7.0, ConvertWeight(7, "stone", "kg"))
}

func TestScaleCatalogue(t *testing.T) {
	assert.Equal(t, []string{"km", "hm", "dam", "m", "dm", "cm", "mm", "in", "ft"}, Length.Codes())
	assert.Equal(t, []string{"kg", "hg", "dag", "g", "dg", "cg", "mg", "lb", "oz"}, Weight.Codes())
	assert.Equal(t, "Feet (ft)", Length.Units[8].Label)
	assert.True(t, Weight.Known("dag"))
	assert.False(t, Weight.Known("ton"))

	rows := Length.All(1, "km")
	require.Len(t, rows, 9)
	assert.Equal(t, "1", rows[0].Display)
	assert.Equal(t, "1000", rows[3].Display)
	assert.Equal(t, "1000000", rows[6].Display)
	assert.Equal(t, "39370.07874", rows[7].Display)
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, 212.0, ToFahrenheit(100))
	assert.Equal(t, 273.15, ToKelvin(0))
	assert.Equal(t, 16.0, ToReaumur(20))

	temps := Temperature(36.6)
	assert.Equal(t, "97.88", temps.Fahrenheit)
	assert.Equal(t, "309.75", temps.Kelvin)
	assert.Equal(t, "29.28", temps.Reaumur)

	zero := Temperature(0)
	assert.Equal(t, "32.00", zero.Fahrenheit)
	assert.Equal(t, "273.15", zero.Kelvin)
	assert.Equal(t, "0.00", zero.Reaumur)
}

func TestConvertCurrency(t *testing.T) {
	rates := DefaultRates()

	assert.InDelta(t, 15000, ConvertCurrency(1, USD, IDR, rates), 1e-9)
	assert.InDelta(t, 1, ConvertCurrency(15000, IDR, USD, rates), 1e-12)
	assert.InDelta(t, 150, ConvertCurrency(15000, IDR, JPY, rates), 1e-9)
	assert.InDelta(t, 1300, ConvertCurrency(150, JPY, KRW, rates), 1e-9)
	assert.Equal(t, 42.0, ConvertCurrency(42, USD, USD, rates))

	assert.Equal(t, 0.0, ConvertCurrency(10, "EUR", USD, rates))
	assert.Equal(t, 0.0, ConvertCurrency(10, USD, "EUR", rates))
	assert.Equal(t, 0.0, ConvertCurrency(10, "usd", IDR, rates))
	assert.InDelta(t, 10, ConvertCurrency(10, IDR, IDR, Rates{IDR: -5}), 1e-12)
	assert.InDelta(t, 10, ConvertCurrency(10, USD, JPY, Rates{}), 1e-12)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0.67", FormatCurrency(USD, 10000.0/15000))
	assert.Equal(t, "12.00", FormatCurrency(USD, 12))
	assert.Equal(t, "15000", FormatCurrency(IDR, 15000.4))
	assert.Equal(t, "151", FormatCurrency(JPY, 150.5))
	assert.Equal(t, "0", FormatCurrency(KRW, -0.2))
	assert.Equal(t, "", FormatCurrency("EUR", 12))
}

func TestSanitizeRate(t *testing.T) {
	assert.Equal(t, 15500.0, SanitizeRate(15500))
	assert.Equal(t, 1.0, SanitizeRate(0))
	assert.Equal(t, 1.0, SanitizeRate(-3))
	assert.Equal(t, 1.0, SanitizeRate(math.NaN()))
	assert.Equal(t, 1.0, SanitizeRate(math.Inf(1)))

	assert.Equal(t, 149.5, ParseRate(" 149.5 "))
	assert.Equal(t, 1.0, ParseRate("abc"))
	assert.Equal(t, 1.0, ParseRate(""))
}

func TestRateBook(t *testing.T) {
	book := NewRateBook(Rates{IDR: 16000, "EUR": 0.9, USD: 5})
	snap := book.Snapshot()
	assert.Equal(t, 16000.0, snap[IDR])
	assert.Equal(t, 150.0, snap[JPY])
	assert.Equal(t, 1.0, snap[USD])
	assert.NotContains(t, snap, "EUR")

	snap[IDR] = 1
	v, _ := book.Get(IDR)
	assert.Equal(t, 16000.0, v, "snapshot must be a copy")

	applied, err := book.Set("jpy", -1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, applied)

	_, err = book.Set("EUR", 2)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	_, err = book.Set(USD, 2)
	assert.Error(t, err)

	rates, err := book.Update(Rates{"krw": 1400, IDR: 0})
	require.NoError(t, err)
	assert.Equal(t, 1400.0, rates[KRW])
	assert.Equal(t, 1.0, rates[IDR])

	_, err = book.Update(Rates{KRW: 1500, "GBP": 0.8})
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	v, _ = book.Get(KRW)
	assert.Equal(t, 1400.0, v, "failed update must not apply")

	rows := book.All(2800, KRW)
	require.Len(t, rows, 4)
	assert.Equal(t, "2.00", rows[0].Display)
}

func TestRateBookConcurrent(t *testing.T) {
	book := NewRateBook(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = book.Set(IDR, float64(15000+i))
		}(i)
		go func() {
			defer wg.Done()
			_ = book.Convert(100, USD, IDR)
		}()
	}
	wg.Wait()

	v, ok := book.Get(IDR)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, 15000.0)
}

func TestRatesFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("rates:\n  idr: 15500\n  JPY: 149.5\n"), 0o644))
	rates, err := LoadRatesFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, Rates{IDR: 15500, JPY: 149.5}, rates)

	tomlPath := filepath.Join(dir, "rates.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[rates]\nKRW = 1350.0\n"), 0o644))
	rates, err = LoadRatesFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, Rates{KRW: 1350}, rates)

	_, err = LoadRatesFile(filepath.Join(dir, "rates.json"))
	assert.Error(t, err)
	_, err = LoadRatesFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rates:\n  EUR: 0.9\n"), 0o644))
	_, err = LoadRatesFile(bad)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestEncodeRatesRoundTrip(t *testing.T) {
	in := Rates{USD: 1, IDR: 15000.5, JPY: 150.25, KRW: 1300.75}
	for _, format := range []Format{FormatYAML, FormatTOML} {
		data, err := EncodeRates(in, format)
		require.NoError(t, err, format)
		out, err := DecodeRates(data, format)
		require.NoError(t, err, format)
		assert.Equal(t, in, out, format)
	}

	_, err := EncodeRates(in, Format("xml"))
	assert.Error(t, err)
}
