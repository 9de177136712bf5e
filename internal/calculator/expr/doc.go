// Package expr evaluates calculator tapes.
//
// A tape is the free-form string a keypad or keyboard builds up: digits,
// the operator glyphs + − × ÷ ^, parentheses, the function heads sin( cos(
// tan( log( ln( sqrt(, the constant π and the postfix factorial !.
//
// Evaluation is a fixed pipeline:
//   - Blank input evaluates to 0
//   - Glyphs are normalized (× → *, ÷ → /, − → -, ^ → **, π → pi)
//   - Factorials n! are expanded in place to their integer value
//   - The result is parsed by a recursive-descent parser into an AST
//   - In Degrees mode every sin/cos/tan argument is wrapped in a
//     degrees→radians conversion at the AST level, so nested calls convert
//     exactly once per call
//   - The AST is evaluated; division by zero and non-finite results fail
//
// Only + - * / ** ( ), unary signs, numeric literals, pi and a fixed
// function table (sin, cos, tan, log, log10, ln, sqrt) are understood.
// Nothing is ever executed as code.
//
// Failures are *Error values carrying an ErrorKind:
//
//	v, err := expr.Evaluate("5÷0", expr.Radians)
//	if errors.Is(err, expr.ErrDivisionByZero) {
//	    // display "Error"
//	}
package expr
