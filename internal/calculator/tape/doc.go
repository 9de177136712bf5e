// Package tape implements the calculator's editable expression buffer.
//
// A State holds the tape, the angle mode and the fresh-result flag. Every
// operation is a pure transition: it takes a State and returns the next
// State, never fails, and always leaves a valid tape. "0" stands for empty
// input and "Error" is the display value after a failed computation; the
// input operations treat "Error" as if the tape had been cleared.
//
// Edits that target "the number being typed" (sign toggle, percent, unary
// math) act on the trailing number token located by LastNumberToken.
//
// Example:
//
//	s := tape.New(expr.Degrees)
//	s = tape.AppendSymbol(s, "sin(")
//	s = tape.AppendDigit(s, "9")
//	s = tape.AppendDigit(s, "0")
//	s = tape.AppendSymbol(s, ")")
//	s, _ = tape.Equals(s) // s.Tape == "1"
package tape
