package tape

import (
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
)

// Key names accepted by Press besides digits, operators and symbols.
const (
	KeyDot        = "."
	KeyEquals     = "="
	KeyEnter      = "Enter"
	KeyBackspace  = "Backspace"
	KeyErase      = "⌫"
	KeyClearAll   = "C"
	KeyAllClear   = "AC"
	KeyClearEntry = "CE"
	KeyPercent    = "%"
	KeySign       = "±"
	KeyDegrees    = "deg"
	KeyRadians    = "rad"
	KeyMode       = "mode"
)

// function keys append their call head
var functionKeys = map[string]string{
	"sin":  "sin(",
	"cos":  "cos(",
	"tan":  "tan(",
	"log":  "log(",
	"ln":   "ln(",
	"sqrt": "sqrt(",
	"pi":   "π",
}

var unaryKeys = map[string]UnaryOp{
	"1/x": Reciprocal,
	"x²":  Square,
	"x^2": Square,
	"√":   SquareRoot,
	"√x":  SquareRoot,
}

// IsEvaluate reports whether key triggers evaluation.
func IsEvaluate(key string) bool {
	return key == KeyEquals || key == KeyEnter
}

// Press applies one keypad or keyboard key. ok is false for keys the
// calculator ignores, in which case s is returned unchanged. The error is an
// evaluation or unary-operation failure that the returned State already
// shows as "Error".
func Press(s State, key string, e *expr.Evaluator) (next State, ok bool, err error) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return AppendDigit(s, key), true, nil
	}
	if _, isOp := operators[key]; isOp {
		return AppendOperator(s, key), true, nil
	}
	if symbols[key] {
		return AppendSymbol(s, key), true, nil
	}
	if head, isFn := functionKeys[key]; isFn {
		return AppendSymbol(s, head), true, nil
	}
	if op, isUnary := unaryKeys[key]; isUnary {
		next, err := applyUnary(s, op)
		return next, true, err
	}

	switch key {
	case KeyDot:
		return AppendDot(s), true, nil
	case KeyEquals, KeyEnter:
		next, err := Equals(s, e)
		return next, true, err
	case KeyBackspace, KeyErase:
		return Backspace(s), true, nil
	case KeyClearAll, KeyAllClear:
		return ClearAll(s), true, nil
	case KeyClearEntry:
		return ClearEntry(s), true, nil
	case KeyPercent:
		return Percent(s), true, nil
	case KeySign:
		return ToggleSign(s), true, nil
	case KeyDegrees:
		return SetMode(s, expr.Degrees), true, nil
	case KeyRadians:
		return SetMode(s, expr.Radians), true, nil
	case KeyMode:
		return SetMode(s, s.Mode.Toggle()), true, nil
	}
	return s, false, nil
}
