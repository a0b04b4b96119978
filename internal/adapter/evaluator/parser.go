package evaluator

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// node evaluates a compiled expression against the current bindings.
type node func(env map[string]float64) float64

type tok struct {
	kind token.Token
	lit  string
	pos  int
}

// lex tokenizes a Python arithmetic expression with the Go scanner. The two
// languages agree on numbers, identifiers and operators for this subset;
// "**" arrives as two MUL tokens and "//" as a comment, which is rejected.
func lex(src string) ([]tok, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, scanner.ScanComments)

	var toks []tok
	for {
		pos, kind, lit := s.Scan()
		off := file.Offset(pos)
		switch kind {
		case token.EOF:
			if errs.Len() > 0 {
				return nil, fmt.Errorf("%w: %v", ErrSyntax, errs.Err())
			}
			return append(toks, tok{kind: token.EOF, pos: off}), nil
		case token.SEMICOLON:
			if lit == "\n" {
				continue
			}
		case token.COMMENT:
			if strings.HasPrefix(lit, "//") {
				return nil, fmt.Errorf("%w: floor division is not supported", ErrSyntax)
			}
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, lit)
		}
		if kind == token.INT || kind == token.FLOAT {
			lit = strings.ReplaceAll(lit, "_", "")
		}
		toks = append(toks, tok{kind: kind, lit: lit, pos: off})
	}
}

type parser struct {
	toks    []tok
	i       int
	defined func(name string) bool
}

func parseExpr(src string, defined func(string) bool) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, defined: defined}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != token.EOF {
		return nil, p.errorf("unexpected %s", p.peek().describe())
	}
	return n, nil
}

func (p *parser) peek() tok { return p.toks[p.i] }

func (p *parser) next() tok {
	t := p.toks[p.i]
	if t.kind != token.EOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: col %d: %s", ErrSyntax, p.peek().pos+1, fmt.Sprintf(format, args...))
}

func (t tok) describe() string {
	if t.kind == token.EOF {
		return "end of expression"
	}
	if t.lit != "" {
		return strconv.Quote(t.lit)
	}
	return strconv.Quote(t.kind.String())
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != token.ADD && op != token.SUB {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		l := left
		if op == token.ADD {
			left = func(env map[string]float64) float64 { return l(env) + right(env) }
		} else {
			left = func(env map[string]float64) float64 { return l(env) - right(env) }
		}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != token.MUL && op != token.QUO && op != token.REM {
			return left, nil
		}
		// "**" belongs to power, which has already consumed it.
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		l := left
		switch op {
		case token.MUL:
			left = func(env map[string]float64) float64 { return l(env) * right(env) }
		case token.QUO:
			left = func(env map[string]float64) float64 { return l(env) / right(env) }
		default:
			left = func(env map[string]float64) float64 { return pyMod(l(env), right(env)) }
		}
	}
}

func (p *parser) unary() (node, error) {
	switch p.peek().kind {
	case token.SUB:
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return func(env map[string]float64) float64 { return -operand(env) }, nil
	case token.ADD:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == token.MUL && p.i+1 < len(p.toks) && p.toks[p.i+1].kind == token.MUL {
		p.next()
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return func(env map[string]float64) float64 { return pow(base(env), exp(env)) }, nil
	}
	return base, nil
}

func (p *parser) primary() (node, error) {
	t := p.peek()
	switch t.kind {
	case token.INT, token.FLOAT:
		p.next()
		v, err := strconv.ParseFloat(t.lit, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, t.lit)
		}
		return func(map[string]float64) float64 { return v }, nil
	case token.LPAREN:
		p.next()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != token.RPAREN {
			return nil, p.errorf("missing )")
		}
		return inner, nil
	case token.IDENT:
		return p.name()
	}
	return nil, p.errorf("unexpected %s", t.describe())
}

// name parses a possibly qualified identifier and an optional call.
func (p *parser) name() (node, error) {
	parts := []string{p.next().lit}
	for p.peek().kind == token.PERIOD {
		p.next()
		t := p.next()
		if t.kind != token.IDENT {
			return nil, p.errorf("expected name after '.'")
		}
		parts = append(parts, t.lit)
	}
	qualified := strings.Join(parts, ".")

	if p.peek().kind == token.LPAREN {
		p.next()
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return call(qualified, args)
	}

	if len(parts) == 1 && p.defined(qualified) {
		return func(env map[string]float64) float64 { return env[qualified] }, nil
	}
	if v, ok := constant(parts); ok {
		return func(map[string]float64) float64 { return v }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUndefined, qualified)
}

func (p *parser) args() ([]node, error) {
	var args []node
	if p.peek().kind == token.RPAREN {
		p.next()
		return args, nil
	}
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch p.next().kind {
		case token.COMMA:
		case token.RPAREN:
			return args, nil
		default:
			return nil, p.errorf("expected , or ) in call")
		}
	}
}
