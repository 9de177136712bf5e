// Package calculator exposes the expression evaluator and the tape editor
// as service tools.
package calculator

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/tape"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/common"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
)

// Provider implements calculator operations
type Provider struct {
	evaluator   *expr.Evaluator
	defaultMode expr.AngleMode
}

// NewProvider creates a calculator provider. mode is used when a call does
// not name one.
func NewProvider(evaluator *expr.Evaluator, mode expr.AngleMode) *Provider {
	if evaluator == nil {
		evaluator = &expr.Evaluator{}
	}
	return &Provider{evaluator: evaluator, defaultMode: mode}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "calculator",
		Name:         "Calculator Service",
		Description:  "Expression evaluation, result formatting and keypad input",
		Category:     types.CategoryMath,
		Capabilities: []string{"evaluate", "format", "keypad"},
		Tools:        p.GetTools(),
	}
}

// GetTools returns calculator tool definitions
func (p *Provider) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "calculator.evaluate",
			Name:        "Evaluate",
			Description: "Evaluate a calculator expression (× ÷ − ^ π !, sin cos tan log ln sqrt)",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression as typed on the calculator", Required: true},
				{Name: "mode", Type: "string", Description: "Angle mode: deg or rad", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "calculator.format",
			Name:        "Format",
			Description: "Format a number for the display",
			Parameters: []types.Parameter{
				{Name: "value", Type: "number", Description: "Number to format", Required: true},
				{Name: "style", Type: "string", Description: "smart (default), plain or fixed", Required: false},
				{Name: "decimals", Type: "number", Description: "Fractional digits for fixed", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "calculator.press",
			Name:        "Press Keys",
			Description: "Apply keypad keys to a calculator state and return the new state",
			Parameters: []types.Parameter{
				{Name: "keys", Type: "array", Description: "Keys in order, e.g. [\"1\", \"+\", \"2\", \"=\"]", Required: true},
				{Name: "tape", Type: "string", Description: "Current tape (default \"0\")", Required: false},
				{Name: "mode", Type: "string", Description: "Angle mode: deg or rad", Required: false},
				{Name: "fresh_result", Type: "boolean", Description: "Whether the tape holds a just-computed result", Required: false},
			},
			Returns: "object",
		},
	}
}

// Execute routes to the tool implementation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "calculator.evaluate":
		return p.Evaluate(ctx, params, appCtx)
	case "calculator.format":
		return p.Format(ctx, params, appCtx)
	case "calculator.press":
		return p.Press(ctx, params, appCtx)
	default:
		return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) mode(params map[string]interface{}) (expr.AngleMode, error) {
	s, ok := common.GetString(params, "mode")
	if !ok || s == "" {
		return p.defaultMode, nil
	}
	return expr.ParseAngleMode(s)
}

// Evaluate evaluates an expression. A failed evaluation is an unsuccessful
// result whose data still carries the "Error" display and the error kind.
func (p *Provider) Evaluate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	expression, ok := common.GetString(params, "expression")
	if !ok {
		return common.Failure("expression parameter required")
	}
	mode, err := p.mode(params)
	if err != nil {
		return common.Failure(err.Error())
	}

	value, err := p.evaluator.Evaluate(expression, mode)
	if err != nil {
		kind, _ := expr.KindOf(err)
		return common.FailureWithData(err.Error(), map[string]interface{}{
			"display":    tape.ErrorDisplay,
			"error_kind": string(kind),
			"mode":       mode.String(),
		})
	}
	return common.Success(map[string]interface{}{
		"value":   value,
		"display": numfmt.Smart(value),
		"mode":    mode.String(),
	})
}

// Format renders a number the way the display or the panels do.
func (p *Provider) Format(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	value, ok := common.GetNumber(params, "value")
	if !ok {
		return common.Failure("value parameter required")
	}

	style, _ := common.GetString(params, "style")
	var out string
	switch style {
	case "", "smart":
		out = numfmt.Smart(value)
	case "plain":
		out = numfmt.Plain(value)
	case "fixed":
		decimals, ok := common.GetNumber(params, "decimals")
		if !ok {
			decimals = 2
		}
		if decimals < 0 || decimals > 20 {
			return common.Failure("decimals must be between 0 and 20")
		}
		out = numfmt.Fixed(value, int(decimals))
	default:
		return common.Failure(fmt.Sprintf("unknown style: %s", style))
	}
	return common.Success(map[string]interface{}{"display": out})
}

// Press applies keys to the state given in params. Ignored keys are
// reported back; the last evaluation error, if any, is reported by kind.
func (p *Provider) Press(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	keys, ok := common.GetStrings(params, "keys")
	if !ok {
		return common.Failure("keys parameter required")
	}
	mode, err := p.mode(params)
	if err != nil {
		return common.Failure(err.Error())
	}

	state := tape.New(mode)
	if t, ok := common.GetString(params, "tape"); ok && t != "" {
		state.Tape = t
	}
	if fresh, ok := common.GetBool(params, "fresh_result"); ok {
		state.FreshResult = fresh
	}

	var (
		ignored []string
		lastErr error
	)
	for _, key := range keys {
		next, handled, err := tape.Press(state, key, p.evaluator)
		if !handled {
			ignored = append(ignored, key)
			continue
		}
		if err != nil {
			lastErr = err
		}
		state = next
	}

	data := map[string]interface{}{
		"tape":         state.Tape,
		"mode":         state.Mode.String(),
		"fresh_result": state.FreshResult,
	}
	if len(ignored) > 0 {
		data["ignored"] = ignored
	}
	if lastErr != nil {
		kind, _ := expr.KindOf(lastErr)
		data["error_kind"] = string(kind)
	}
	return common.Success(data)
}
