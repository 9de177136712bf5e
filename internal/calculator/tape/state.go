package tape

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
)

const (
	// Empty is the tape sentinel for "no input".
	Empty = "0"
	// ErrorDisplay replaces the tape after a failed computation.
	ErrorDisplay = "Error"
)

// State is the full calculator state of one session.
type State struct {
	Tape        string         `json:"tape"`
	Mode        expr.AngleMode `json:"mode"`
	FreshResult bool           `json:"fresh_result"`
}

// New returns a cleared state in mode.
func New(mode expr.AngleMode) State {
	return State{Tape: Empty, Mode: mode}
}

// IsError reports whether the tape shows the error sentinel.
func (s State) IsError() bool {
	return s.Tape == ErrorDisplay
}

// cleared reports whether the next input should replace the tape.
func (s State) cleared() bool {
	return s.Tape == Empty || s.Tape == ErrorDisplay || s.Tape == ""
}

var numberToken = regexp.MustCompile(`(?s)^(.*?)(-?[0-9]+\.?[0-9]*)$`)

// LastNumberToken splits tape into the text before its trailing number and
// the number itself, matching the longest trailing run of -?digit+(.digit*)?.
// A preceding '-' always belongs to the token, so "5-3" yields ("5", "-3").
// ok is false when the tape does not end in a number.
func LastNumberToken(tape string) (prefix, token string, ok bool) {
	m := numberToken.FindStringSubmatch(tape)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// binary operator glyphs that may end a tape
const operatorGlyphs = "+-*/×÷^−"

func endsInOperator(tape string) bool {
	r, _ := utf8.DecodeLastRuneInString(tape)
	return r != utf8.RuneError && strings.ContainsRune(operatorGlyphs, r)
}

func trimOperators(tape string) string {
	return strings.TrimRight(tape, operatorGlyphs)
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
