package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/tape"
)

const help = `keys:     0-9 . + - × ÷ * / ^ ( ) ! % ± ⌫ C CE = sin cos tan log ln sqrt pi 1/x x² √
commands: :deg :rad :clear :help :q`

type repl struct {
	evaluator *expr.Evaluator
	state     tape.State
	out       io.Writer
}

func newREPL(evaluator *expr.Evaluator, mode expr.AngleMode, out io.Writer) *repl {
	return &repl{evaluator: evaluator, state: tape.New(mode), out: out}
}

// run reads lines until EOF or :q
func (r *repl) run(in io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(r.out, "[%s] > ", r.state.Mode)
		}
		if !scanner.Scan() {
			if prompt {
				fmt.Fprintln(r.out)
			}
			return scanner.Err()
		}
		if !r.handle(strings.TrimSpace(scanner.Text())) {
			return nil
		}
	}
}

// handle processes one line and reports whether to keep reading
func (r *repl) handle(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}

	if next, ok, err := r.pressAll(strings.Fields(line)); ok {
		r.state = next
		r.print(err)
		return true
	}

	r.evaluateOnce(line)
	return true
}

// pressAll presses every field as a key on a copy of the state. ok is false
// when some field is not a key, and the state is left untouched.
func (r *repl) pressAll(fields []string) (tape.State, bool, error) {
	s := r.state
	var last error
	for _, key := range fields {
		next, handled, err := tape.Press(s, key, r.evaluator)
		if !handled {
			return r.state, false, nil
		}
		s = next
		if err != nil {
			last = err
		}
	}
	return s, true, last
}

func (r *repl) command(line string) bool {
	switch strings.ToLower(line) {
	case ":q", ":quit", ":exit":
		return false
	case ":deg":
		r.state = tape.SetMode(r.state, expr.Degrees)
		fmt.Fprintln(r.out, "mode: deg")
	case ":rad":
		r.state = tape.SetMode(r.state, expr.Radians)
		fmt.Fprintln(r.out, "mode: rad")
	case ":clear", ":c":
		r.state = tape.ClearAll(r.state)
		r.print(nil)
	case ":help", ":h":
		fmt.Fprintln(r.out, help)
	default:
		fmt.Fprintf(r.out, "unknown command %s (try :help)\n", line)
	}
	return true
}

// evaluateOnce prints the value of expression and reports success
func (r *repl) evaluateOnce(expression string) bool {
	r.state.Tape = expression
	next, err := tape.Equals(r.state, r.evaluator)
	r.state = next
	r.print(err)
	return err == nil
}

func (r *repl) print(err error) {
	if kind, ok := expr.KindOf(err); ok {
		fmt.Fprintf(r.out, "%s (%s)\n", r.state.Tape, kind)
		return
	}
	fmt.Fprintln(r.out, r.state.Tape)
}
