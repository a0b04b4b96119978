// Package evaluator compiles the numeric Python subset accepted by the
// translator into a Go function, so previews can be sampled locally.
package evaluator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"slidergraph/internal/adapter/translator"
	"slidergraph/internal/port"
)

var (
	ErrSyntax    = errors.New("unsupported syntax")
	ErrUndefined = errors.New("undefined name")
	ErrNoReturn  = errors.New("function has no return statement")
)

var (
	signatureRe  = regexp.MustCompile(`^def\s+([A-Za-z_]\w*)\s*\((.*)\)\s*(->.*)?:\s*$`)
	assignmentRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*([-+*/]?)=\s*([^=].*)$`)
)

type statement struct {
	target string
	value  node
}

// Program is a compiled function body.
type Program struct {
	Name      string
	variable  string
	parameter string
	defaults  map[string]float64
	body      []statement
	result    node
}

// Compile builds a Program from function source. variable and parameter
// name the signature arguments fed with x and the slider value; other
// signature arguments take their default or 0.
func Compile(source, variable, parameter string, indent string) (*Program, error) {
	if variable == "" {
		return nil, fmt.Errorf("%w: no variable name", ErrSyntax)
	}
	tr := translator.New(translator.Config{SourceIndent: indent})
	signature, stmts, _ := tr.Statements(source)

	prog := &Program{
		variable:  variable,
		parameter: parameter,
		defaults:  make(map[string]float64),
	}
	defined := map[string]bool{variable: true}
	if parameter != "" {
		defined[parameter] = true
	}

	if signature != "" {
		name, args, err := parseSignature(signature)
		if err != nil {
			return nil, err
		}
		prog.Name = name
		for _, a := range args {
			if a.name == variable || a.name == parameter {
				continue
			}
			v := 0.0
			if a.def != "" {
				n, err := parseExpr(a.def, func(string) bool { return false })
				if err != nil {
					return nil, fmt.Errorf("default of %s: %w", a.name, err)
				}
				v = n(nil)
			}
			prog.defaults[a.name] = v
			defined[a.name] = true
		}
	}

	isDefined := func(name string) bool { return defined[name] }
	for _, s := range stmts {
		if translator.IsReturn(s) {
			expr := strings.TrimSpace(s[len("return"):])
			if expr == "" {
				return nil, fmt.Errorf("%w: bare return", ErrSyntax)
			}
			n, err := parseExpr(expr, isDefined)
			if err != nil {
				return nil, fmt.Errorf("return: %w", err)
			}
			prog.result = n
			break
		}

		m := assignmentRe.FindStringSubmatch(s)
		if m == nil {
			return nil, fmt.Errorf("%w: %q is not an assignment", ErrSyntax, s)
		}
		target, op, rhs := m[1], m[2], m[3]
		if op != "" && !defined[target] {
			return nil, fmt.Errorf("%w: %q", ErrUndefined, target)
		}
		n, err := parseExpr(rhs, isDefined)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		prog.body = append(prog.body, statement{target: target, value: augmented(target, op, n)})
		defined[target] = true
	}

	if prog.result == nil {
		return nil, ErrNoReturn
	}
	return prog, nil
}

// Eval runs the body with the variable bound to x and the parameter to p.
func (p *Program) Eval(x, param float64) float64 {
	env := make(map[string]float64, len(p.defaults)+len(p.body)+2)
	for k, v := range p.defaults {
		env[k] = v
	}
	env[p.variable] = x
	if p.parameter != "" {
		env[p.parameter] = param
	}
	for _, s := range p.body {
		env[s.target] = s.value(env)
	}
	return p.result(env)
}

// Func adapts the program to a port.NumericFunc.
func (p *Program) Func() port.NumericFunc {
	return func(x, param float64) (float64, error) {
		return p.Eval(x, param), nil
	}
}

func augmented(target, op string, rhs node) node {
	switch op {
	case "+":
		return func(env map[string]float64) float64 { return env[target] + rhs(env) }
	case "-":
		return func(env map[string]float64) float64 { return env[target] - rhs(env) }
	case "*":
		return func(env map[string]float64) float64 { return env[target] * rhs(env) }
	case "/":
		return func(env map[string]float64) float64 { return env[target] / rhs(env) }
	}
	return rhs
}

type argument struct {
	name string
	def  string
}

func parseSignature(sig string) (string, []argument, error) {
	m := signatureRe.FindStringSubmatch(sig)
	if m == nil {
		return "", nil, fmt.Errorf("%w: bad signature %q", ErrSyntax, sig)
	}
	var args []argument
	for _, raw := range strings.Split(m[2], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "*") || raw == "/" {
			continue
		}
		var a argument
		name, def, hasDef := strings.Cut(raw, "=")
		if hasDef {
			a.def = strings.TrimSpace(def)
		}
		name, _, _ = strings.Cut(name, ":")
		a.name = strings.TrimSpace(name)
		args = append(args, a)
	}
	return m[1], args, nil
}
