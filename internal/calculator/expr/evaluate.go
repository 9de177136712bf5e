package expr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"^", "**",
	"π", "pi",
)

// Normalize rewrites calculator glyphs into the ASCII operators the parser reads.
func Normalize(tape string) string {
	return glyphs.Replace(tape)
}

var factorialPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)!`)

// ExpandFactorials replaces every n! with the decimal value of n!. The
// operand must be a non-negative integer; "2.5!" fails with
// ErrInvalidFactorial. Operands past 170 overflow float64 and fail with
// ErrNonFiniteResult.
func ExpandFactorials(s string) (string, error) {
	var failure error
	out := factorialPattern.ReplaceAllStringFunc(s, func(match string) string {
		if failure != nil {
			return match
		}
		operand := strings.TrimSuffix(match, "!")
		n, err := strconv.ParseFloat(operand, 64)
		if err != nil || n < 0 || n != math.Trunc(n) {
			failure = newError(KindInvalidFactorial, "%s is not a non-negative integer", operand)
			return match
		}
		f, ok := Factorial(n)
		if !ok {
			failure = newError(KindNonFiniteResult, "%s! overflows", operand)
			return match
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	})
	if failure != nil {
		return "", failure
	}
	return out, nil
}

// Factorial computes n! iteratively for a non-negative integer n. ok is
// false once the product overflows float64.
func Factorial(n float64) (float64, bool) {
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
		if math.IsInf(result, 0) {
			return 0, false
		}
	}
	return result, true
}

// Evaluator runs the tape pipeline. The zero value is ready to use and
// accepts tapes of any length.
type Evaluator struct {
	// MaxLength bounds the tape in characters; 0 disables the check.
	MaxLength int
}

// Evaluate evaluates tape under mode with a default Evaluator.
func Evaluate(tape string, mode AngleMode) (float64, error) {
	var e Evaluator
	return e.Evaluate(tape, mode)
}

// Evaluate runs the pipeline and returns a finite result or an *Error.
func (e *Evaluator) Evaluate(tape string, mode AngleMode) (float64, error) {
	if strings.TrimSpace(tape) == "" {
		return 0, nil
	}
	if e.MaxLength > 0 && utf8.RuneCountInString(tape) > e.MaxLength {
		return 0, newError(KindSyntax, "expression longer than %d characters", e.MaxLength)
	}

	tree, err := Compile(tape, mode)
	if err != nil {
		return 0, err
	}

	value, err := tree.Eval()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, newError(KindNonFiniteResult, "%s evaluates to %v", tape, value)
	}
	return value, nil
}

// Compile parses tape into a tree already rewritten for mode.
func Compile(tape string, mode AngleMode) (Node, error) {
	normalized, err := ExpandFactorials(Normalize(tape))
	if err != nil {
		return nil, err
	}
	tree, err := Parse(normalized)
	if err != nil {
		return nil, err
	}
	return WithAngleMode(tree, mode), nil
}
