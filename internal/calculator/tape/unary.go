package tape

import (
	"math"
	"strconv"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"
)

// UnaryOp is a one-operand key that rewrites the trailing number.
type UnaryOp string

const (
	Reciprocal UnaryOp = "1/x"
	Square     UnaryOp = "x²"
	SquareRoot UnaryOp = "√x"
)

// Compute applies op to x. Reciprocal of 0 and square root of a negative
// number fail with expr.ErrDomain, as does any non-finite result.
func (op UnaryOp) Compute(x float64) (float64, error) {
	var res float64
	switch op {
	case Reciprocal:
		if x == 0 {
			return 0, &expr.Error{Kind: expr.KindDomain, Detail: "reciprocal of zero"}
		}
		res = 1 / x
	case Square:
		res = x * x
	case SquareRoot:
		if x < 0 {
			return 0, &expr.Error{Kind: expr.KindDomain, Detail: "square root of a negative number"}
		}
		res = math.Sqrt(x)
	default:
		return 0, &expr.Error{Kind: expr.KindDomain, Detail: "unknown operation " + string(op)}
	}
	if math.IsInf(res, 0) || math.IsNaN(res) {
		return 0, &expr.Error{Kind: expr.KindDomain, Detail: string(op) + " overflows"}
	}
	return res, nil
}

// ApplyUnary replaces the trailing number with op applied to it. A domain
// failure turns the whole tape into "Error"; a tape without a trailing
// number is left unchanged.
func ApplyUnary(s State, op UnaryOp) State {
	next, _ := applyUnary(s, op)
	return next
}

func applyUnary(s State, op UnaryOp) (State, error) {
	prefix, token, ok := LastNumberToken(s.Tape)
	if !ok {
		return s, nil
	}
	x, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return s, nil
	}
	res, err := op.Compute(x)
	if err != nil {
		s.Tape = ErrorDisplay
		return s, err
	}
	s.Tape = prefix + numfmt.Plain(res)
	return s, nil
}

// Equals evaluates the tape with e. The tape becomes the smart-formatted
// result, or "Error" with the evaluation error returned alongside; either
// way the fresh-result flag is set.
func Equals(s State, e *expr.Evaluator) (State, error) {
	if e == nil {
		e = &expr.Evaluator{}
	}
	s.FreshResult = true
	v, err := e.Evaluate(s.Tape, s.Mode)
	if err != nil {
		s.Tape = ErrorDisplay
		return s, err
	}
	s.Tape = numfmt.Smart(v)
	return s, nil
}
