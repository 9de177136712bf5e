// Package main is an interactive terminal calculator.
//
// Each input line is either a run of keypad keys separated by spaces, pressed
// in order, or a whole expression that is evaluated as if typed and followed
// by "=":
//
//	> 7 × 6 =
//	42
//	> sin(30)*2
//	1
//	> 5/0
//	Error (division_by_zero)
//
// Commands start with a colon: :deg, :rad, :clear, :help and :q.
//
// Usage:
//
//	./calc              # interactive
//	./calc -mode rad    # start in radians
//	./calc -e '2^10'    # evaluate once and exit
package main
