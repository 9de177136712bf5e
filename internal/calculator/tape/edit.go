package tape

import (
	"strconv"
	"strings"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"
)

// AppendDigit types one digit. It starts a new number when the tape is
// empty, shows an error, or holds a fresh result.
func AppendDigit(s State, d string) State {
	if len(d) != 1 || d[0] < '0' || d[0] > '9' {
		return s
	}
	if s.cleared() || s.FreshResult {
		s.Tape = d
		s.FreshResult = false
		return s
	}
	s.Tape += d
	return s
}

// AppendDot starts a fraction unless the number being typed already has one.
func AppendDot(s State) State {
	if s.FreshResult || s.IsError() {
		s.Tape = "0."
		s.FreshResult = false
		return s
	}
	if strings.Contains(trailingNumeric(s.Tape), ".") {
		return s
	}
	s.Tape += "."
	return s
}

// trailingNumeric returns the trailing run of digits and dots.
func trailingNumeric(tape string) string {
	i := len(tape)
	for i > 0 {
		c := tape[i-1]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		i--
	}
	return tape[i:]
}

// operator aliases accepted from the keyboard
var operators = map[string]string{
	"+": "+",
	"-": "-",
	"−": "-",
	"×": "×",
	"*": "×",
	"÷": "÷",
	"/": "÷",
	"^": "^",
}

// AppendOperator appends a binary operator, replacing any trailing run of
// operators so the tape never holds two adjacent operators ("5×-" + "+" is
// "5+"). An error tape becomes the operator alone.
func AppendOperator(s State, op string) State {
	glyph, ok := operators[op]
	if !ok {
		return s
	}
	s.FreshResult = false
	switch {
	case s.IsError():
		s.Tape = glyph
	case endsInOperator(s.Tape):
		s.Tape = trimOperators(s.Tape) + glyph
	default:
		s.Tape += glyph
	}
	return s
}

var symbols = map[string]bool{
	"sin(":  true,
	"cos(":  true,
	"tan(":  true,
	"log(":  true,
	"ln(":   true,
	"sqrt(": true,
	"(":     true,
	")":     true,
	"!":     true,
	"π":     true,
}

// AppendSymbol appends a function head, a parenthesis, '!' or 'π'.
// Parentheses are not balanced here; the evaluator rejects unbalanced tapes.
func AppendSymbol(s State, sym string) State {
	if !symbols[sym] {
		return s
	}
	if s.cleared() {
		s.Tape = sym
		return s
	}
	s.Tape += sym
	return s
}

// Backspace removes the last character, falling back to "0".
func Backspace(s State) State {
	if s.IsError() {
		s.Tape = Empty
		return s
	}
	next := trimLastRune(s.Tape)
	if next == "" || next == "-" {
		next = Empty
	}
	s.Tape = next
	return s
}

// ClearEntry resets the tape.
func ClearEntry(s State) State {
	s.Tape = Empty
	return s
}

// ClearAll resets the tape and the fresh-result flag.
func ClearAll(s State) State {
	s.Tape = Empty
	s.FreshResult = false
	return s
}

// ToggleSign negates the trailing number.
func ToggleSign(s State) State {
	prefix, token, ok := LastNumberToken(s.Tape)
	if !ok {
		return s
	}
	if strings.HasPrefix(token, "-") {
		s.Tape = prefix + token[1:]
	} else {
		s.Tape = prefix + "-" + token
	}
	return s
}

// Percent divides the trailing number by 100 in place.
func Percent(s State) State {
	prefix, token, ok := LastNumberToken(s.Tape)
	if !ok {
		return s
	}
	x, err := strconv.ParseFloat(token, 64)
	if err != nil {
		x = 0
	}
	s.Tape = prefix + numfmt.Plain(x/100)
	return s
}

// SetMode switches the angle mode; the tape is untouched.
func SetMode(s State, mode expr.AngleMode) State {
	s.Mode = mode
	return s
}
