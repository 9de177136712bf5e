package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Node is an evaluable expression tree node.
type Node interface {
	Eval() (float64, error)
	String() string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// Constant is a named constant such as pi.
type Constant struct {
	Name  string
	Value float64
}

// UnaryExpr is a signed operand.
type UnaryExpr struct {
	Op TokenType
	X  Node
}

// BinaryExpr applies one of + - * / **.
type BinaryExpr struct {
	Op          TokenType
	Left, Right Node
}

// CallExpr applies a one-argument function.
type CallExpr struct {
	Func *Function
	Arg  Node
}

// Function is an entry of the function table.
type Function struct {
	Name  string
	Apply func(float64) float64
	// Angular functions take radians and are converted in Degrees mode.
	Angular bool
}

var functions = map[string]*Function{
	"sin":   {Name: "sin", Apply: math.Sin, Angular: true},
	"cos":   {Name: "cos", Apply: math.Cos, Angular: true},
	"tan":   {Name: "tan", Apply: math.Tan, Angular: true},
	"log":   {Name: "log", Apply: math.Log10},
	"log10": {Name: "log10", Apply: math.Log10},
	"ln":    {Name: "ln", Apply: math.Log},
	"sqrt":  {Name: "sqrt", Apply: math.Sqrt},
}

var constants = map[string]float64{
	"pi": math.Pi,
}

// LookupFunction returns the function bound to name.
func LookupFunction(name string) (*Function, bool) {
	fn, ok := functions[name]
	return fn, ok
}

func (n *NumberLit) Eval() (float64, error) { return n.Value, nil }
func (n *NumberLit) String() string         { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

func (c *Constant) Eval() (float64, error) { return c.Value, nil }
func (c *Constant) String() string         { return c.Name }

func (u *UnaryExpr) Eval() (float64, error) {
	x, err := u.X.Eval()
	if err != nil {
		return 0, err
	}
	if u.Op == TokenMinus {
		return -x, nil
	}
	return x, nil
}

func (u *UnaryExpr) String() string {
	if u.Op == TokenMinus {
		return fmt.Sprintf("(-%s)", u.X)
	}
	return fmt.Sprintf("(+%s)", u.X)
}

func (b *BinaryExpr) Eval() (float64, error) {
	left, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case TokenPlus:
		return left + right, nil
	case TokenMinus:
		return left - right, nil
	case TokenStar:
		return left * right, nil
	case TokenSlash:
		if right == 0 {
			return 0, newError(KindDivisionByZero, "%s / %s", b.Left, b.Right)
		}
		return left / right, nil
	case TokenPower:
		return math.Pow(left, right), nil
	default:
		return 0, newError(KindSyntax, "unsupported operator %s", b.Op)
	}
}

func (b *BinaryExpr) String() string {
	op := tokenNames[b.Op]
	if len(op) > 2 {
		op = op[1 : len(op)-1]
	}
	return fmt.Sprintf("(%s %s %s)", b.Left, op, b.Right)
}

func (c *CallExpr) Eval() (float64, error) {
	x, err := c.Arg.Eval()
	if err != nil {
		return 0, err
	}
	return c.Func.Apply(x), nil
}

func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.Func.Name, c.Arg)
}

// WithAngleMode rewrites the tree for mode. In Degrees mode the argument of
// every angular call becomes (arg * pi) / 180; Radians leaves the tree as is.
func WithAngleMode(n Node, mode AngleMode) Node {
	if mode == Radians {
		return n
	}
	return toRadians(n)
}

func toRadians(n Node) Node {
	switch n := n.(type) {
	case *UnaryExpr:
		return &UnaryExpr{Op: n.Op, X: toRadians(n.X)}
	case *BinaryExpr:
		return &BinaryExpr{Op: n.Op, Left: toRadians(n.Left), Right: toRadians(n.Right)}
	case *CallExpr:
		arg := toRadians(n.Arg)
		if n.Func.Angular {
			arg = &BinaryExpr{
				Op:    TokenSlash,
				Left:  &BinaryExpr{Op: TokenStar, Left: arg, Right: &Constant{Name: "pi", Value: math.Pi}},
				Right: &NumberLit{Value: 180},
			}
		}
		return &CallExpr{Func: n.Func, Arg: arg}
	default:
		return n
	}
}
