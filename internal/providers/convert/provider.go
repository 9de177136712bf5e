package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/common"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
)

// Provider implements the converter panels as service tools
type Provider struct {
	rates *RateBook
}

// NewProvider creates a conversion provider backed by rates
func NewProvider(rates *RateBook) *Provider {
	if rates == nil {
		rates = NewRateBook(nil)
	}
	return &Provider{rates: rates}
}

// Rates returns the provider's rate book
func (p *Provider) Rates() *RateBook {
	return p.rates
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "convert",
		Name:         "Conversion Service",
		Description:  "Length, weight, temperature and currency conversion",
		Category:     types.CategoryConversion,
		Capabilities: []string{"length", "weight", "temperature", "currency", "rates"},
		Tools:        p.GetTools(),
	}
}

// GetTools returns conversion tool definitions
func (p *Provider) GetTools() []types.Tool {
	scaleParams := func(unit string) []types.Parameter {
		return []types.Parameter{
			{Name: "value", Type: "number", Description: "Value to convert (non-numeric reads as 0)", Required: true},
			{Name: "from", Type: "string", Description: "Source " + unit + " unit", Required: true},
			{Name: "to", Type: "string", Description: "Target " + unit + " unit; omit for every unit", Required: false},
		}
	}
	return []types.Tool{
		{
			ID:          "convert.length",
			Name:        "Convert Length",
			Description: "Convert length through meters",
			Parameters:  scaleParams("length"),
			Returns:     "object",
		},
		{
			ID:          "convert.weight",
			Name:        "Convert Weight",
			Description: "Convert weight through kilograms",
			Parameters:  scaleParams("weight"),
			Returns:     "object",
		},
		{
			ID:          "convert.temperature",
			Name:        "Convert Temperature",
			Description: "Convert Celsius to Fahrenheit, Kelvin and Réaumur",
			Parameters: []types.Parameter{
				{Name: "celsius", Type: "number", Description: "Temperature in Celsius", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "convert.currency",
			Name:        "Convert Currency",
			Description: "Convert currency through USD with the current rates",
			Parameters: []types.Parameter{
				{Name: "value", Type: "number", Description: "Amount (non-numeric reads as 0)", Required: true},
				{Name: "from", Type: "string", Description: "Source currency code", Required: true},
				{Name: "to", Type: "string", Description: "Target currency code; omit for every currency", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "convert.units",
			Name:        "List Units",
			Description: "Unit catalogues and currency codes",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "convert.rates.get",
			Name:        "Get Rates",
			Description: "Current exchange rates in units per USD",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "convert.rates.set",
			Name:        "Set Rate",
			Description: "Edit one exchange rate; non-positive or non-numeric values become 1",
			Parameters: []types.Parameter{
				{Name: "code", Type: "string", Description: "Currency code (IDR, JPY, KRW)", Required: true},
				{Name: "rate", Type: "number", Description: "Units per USD", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "convert.rates.export",
			Name:        "Export Rates",
			Description: "Render the current rates as a YAML or TOML rates file",
			Parameters: []types.Parameter{
				{Name: "format", Type: "string", Description: "yaml (default) or toml", Required: false},
			},
			Returns: "string",
		},
	}
}

// Execute routes to the tool implementation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "convert.length":
		return p.scale(Length, params)
	case "convert.weight":
		return p.scale(Weight, params)
	case "convert.temperature":
		return p.temperature(params)
	case "convert.currency":
		return p.currency(params)
	case "convert.units":
		return p.units()
	case "convert.rates.get":
		return common.Success(map[string]interface{}{"rates": p.rates.Snapshot()})
	case "convert.rates.set":
		return p.setRate(params)
	case "convert.rates.export":
		return p.exportRates(params)
	default:
		return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) scale(s *Scale, params map[string]interface{}) (*types.Result, error) {
	value := common.NumberOrZero(params, "value")
	from, ok := common.GetString(params, "from")
	if !ok || from == "" {
		return common.Failure("from parameter required")
	}

	to, _ := common.GetString(params, "to")
	if to == "" {
		return common.Success(map[string]interface{}{
			"from":        from,
			"value":       value,
			"conversions": s.All(value, from),
		})
	}

	result := s.Convert(value, from, to)
	return common.Success(map[string]interface{}{
		"from":    from,
		"to":      to,
		"value":   result,
		"display": numfmt.Smart(result),
	})
}

func (p *Provider) temperature(params map[string]interface{}) (*types.Result, error) {
	t := Temperature(common.NumberOrZero(params, "celsius"))
	return common.Success(map[string]interface{}{
		"celsius":    t.Celsius,
		"fahrenheit": t.Fahrenheit,
		"kelvin":     t.Kelvin,
		"reaumur":    t.Reaumur,
	})
}

func (p *Provider) currency(params map[string]interface{}) (*types.Result, error) {
	value := common.NumberOrZero(params, "value")
	from, _ := common.GetString(params, "from")
	from = strings.ToUpper(from)
	if !IsCurrency(from) {
		return common.Failure(fmt.Sprintf("unknown currency: %q", from))
	}

	to, _ := common.GetString(params, "to")
	if to == "" {
		return common.Success(map[string]interface{}{
			"from":        from,
			"value":       value,
			"conversions": p.rates.All(value, from),
		})
	}

	to = strings.ToUpper(to)
	if !IsCurrency(to) {
		return common.Failure(fmt.Sprintf("unknown currency: %q", to))
	}
	result := p.rates.Convert(value, from, to)
	return common.Success(map[string]interface{}{
		"from":    from,
		"to":      to,
		"value":   result,
		"display": FormatCurrency(to, result),
	})
}

func (p *Provider) units() (*types.Result, error) {
	return common.Success(map[string]interface{}{
		"length":     Length.Units,
		"weight":     Weight.Units,
		"currencies": Currencies,
	})
}

func (p *Provider) setRate(params map[string]interface{}) (*types.Result, error) {
	code, ok := common.GetString(params, "code")
	if !ok {
		return common.Failure("code parameter required")
	}

	// "abc" and missing both become 1 through SanitizeRate
	rate, _ := common.GetNumber(params, "rate")
	applied, err := p.rates.Set(code, rate)
	if err != nil {
		return common.Failure(err.Error())
	}
	return common.Success(map[string]interface{}{
		"code":  strings.ToUpper(code),
		"rate":  applied,
		"rates": p.rates.Snapshot(),
	})
}

func (p *Provider) exportRates(params map[string]interface{}) (*types.Result, error) {
	format := FormatYAML
	if f, ok := common.GetString(params, "format"); ok && f != "" {
		format = Format(strings.ToLower(f))
	}

	data, err := EncodeRates(p.rates.Snapshot(), format)
	if err != nil {
		return common.Failure(err.Error())
	}
	return common.Success(map[string]interface{}{
		"format":  string(format),
		"content": string(data),
	})
}
