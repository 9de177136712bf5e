package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// rateFile is the on-disk layout of a rates file:
//
//	rates:
//	  IDR: 15500
//	  JPY: 149.5
type rateFile struct {
	Rates map[string]float64 `yaml:"rates" toml:"rates"`
}

// Format names a rates file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported rates file extension %q", filepath.Ext(path))
	}
}

// DecodeRates parses rates encoded as format.
func DecodeRates(data []byte, format Format) (Rates, error) {
	var f rateFile
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported rates format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s rates: %w", format, err)
	}

	rates := make(Rates, len(f.Rates))
	for code, v := range f.Rates {
		code = strings.ToUpper(code)
		if !IsCurrency(code) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
		rates[code] = v
	}
	return rates, nil
}

// EncodeRates renders rates as format.
func EncodeRates(rates Rates, format Format) ([]byte, error) {
	f := rateFile{Rates: rates}
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		return toml.Marshal(f)
	default:
		return nil, fmt.Errorf("unsupported rates format %q", format)
	}
}

// LoadRatesFile reads a YAML or TOML rates file.
func LoadRatesFile(path string) (Rates, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file: %w", err)
	}
	return DecodeRates(data, format)
}
