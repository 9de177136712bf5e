package expr

// Parser is a recursive-descent parser over normalized input.
//
//	expression     = additive EOF
//	additive       = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = unary { ("*" | "/") unary }
//	unary          = ("+" | "-") unary | power
//	power          = primary [ "**" unary ]
//	primary        = number | constant | function "(" additive ")" | "(" additive ")"
//
// "**" is right-associative and binds tighter than a leading sign, so
// -2**2 is -(2**2).
type Parser struct {
	lexer   *Lexer
	current Token
}

// Parse parses a normalized expression into a tree.
func Parse(input string) (Node, error) {
	p := &Parser{lexer: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.unexpected()
	}
	return node, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) unexpected() *Error {
	if p.current.Type == TokenEOF {
		return newError(KindSyntax, "unexpected end of input")
	}
	return newError(KindSyntax, "unexpected %s %q at %d", p.current.Type, p.current.Text, p.current.Pos)
}

func (p *Parser) expect(t TokenType) error {
	if p.current.Type != t {
		if t == TokenRParen {
			return newError(KindSyntax, "missing ')' at %d", p.current.Pos)
		}
		return p.unexpected()
	}
	return p.advance()
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokenStar || p.current.Type == TokenSlash {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, X: x}, nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenPower {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: TokenPower, Left: base, Right: exponent}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current
	switch tok.Type {
	case TokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NumberLit{Value: tok.Number}, nil

	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenIdent:
		if value, ok := constants[tok.Text]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Constant{Name: tok.Text, Value: value}, nil
		}
		fn, ok := LookupFunction(tok.Text)
		if !ok {
			return nil, newError(KindSyntax, "unknown name %q at %d", tok.Text, tok.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.current.Type != TokenLParen {
			return nil, newError(KindSyntax, "%s must be followed by '(' at %d", fn.Name, p.current.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &CallExpr{Func: fn, Arg: arg}, nil

	default:
		return nil, p.unexpected()
	}
}
