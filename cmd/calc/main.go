package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
)

func main() {
	expression := flag.String("e", "", "Evaluate an expression and exit")
	modeFlag := flag.String("mode", "deg", "Angle mode: deg or rad")
	maxTape := flag.Int("max", 512, "Longest accepted expression in characters (0 for no limit)")
	flag.Parse()

	mode, err := expr.ParseAngleMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	r := newREPL(&expr.Evaluator{MaxLength: *maxTape}, mode, os.Stdout)
	if *expression != "" {
		if !r.evaluateOnce(*expression) {
			os.Exit(1)
		}
		return
	}
	if err := r.run(os.Stdin, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
