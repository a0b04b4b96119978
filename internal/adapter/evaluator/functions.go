package evaluator

import (
	"fmt"
	"math"
)

type mathFunc struct {
	arity int
	fn    func(args []float64) float64
}

func unary(f func(float64) float64) mathFunc {
	return mathFunc{arity: 1, fn: func(a []float64) float64 { return f(a[0]) }}
}

func binary(f func(float64, float64) float64) mathFunc {
	return mathFunc{arity: 2, fn: func(a []float64) float64 { return f(a[0], a[1]) }}
}

// namespaced are reachable as np.X, numpy.X or math.X.
var namespaced = map[string]mathFunc{
	"sqrt":     unary(math.Sqrt),
	"log10":    unary(math.Log10),
	"log2":     unary(math.Log2),
	"log":      unary(math.Log),
	"exp":      unary(math.Exp),
	"sin":      unary(math.Sin),
	"cos":      unary(math.Cos),
	"tan":      unary(math.Tan),
	"asin":     unary(math.Asin),
	"acos":     unary(math.Acos),
	"atan":     unary(math.Atan),
	"arcsin":   unary(math.Asin),
	"arccos":   unary(math.Acos),
	"arctan":   unary(math.Atan),
	"sinh":     unary(math.Sinh),
	"cosh":     unary(math.Cosh),
	"tanh":     unary(math.Tanh),
	"abs":      unary(math.Abs),
	"fabs":     unary(math.Abs),
	"absolute": unary(math.Abs),
	"floor":    unary(math.Floor),
	"ceil":     unary(math.Ceil),
	"atan2":    binary(math.Atan2),
	"arctan2":  binary(math.Atan2),
	"power":    binary(pow),
	"pow":      binary(pow),
}

// builtins are the Python builtins allowed without a namespace.
var builtins = map[string]mathFunc{
	"pow":   binary(pow),
	"abs":   unary(math.Abs),
	"float": unary(func(v float64) float64 { return v }),
}

var namespaces = map[string]bool{"np": true, "numpy": true, "math": true}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

func lookupFunc(name string) (mathFunc, bool) {
	if f, ok := builtins[name]; ok {
		return f, true
	}
	for ns := range namespaces {
		if len(name) > len(ns)+1 && name[:len(ns)+1] == ns+"." {
			f, ok := namespaced[name[len(ns)+1:]]
			return f, ok
		}
	}
	return mathFunc{}, false
}

func call(name string, args []node) (node, error) {
	f, ok := lookupFunc(name)
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrUndefined, name)
	}
	if len(args) != f.arity {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, name, f.arity, len(args))
	}
	return func(env map[string]float64) float64 {
		vals := make([]float64, len(args))
		for i, a := range args {
			vals[i] = a(env)
		}
		return f.fn(vals)
	}, nil
}

// constant resolves np.pi, math.e and friends. Bare pi and e are not Python
// names and stay undefined.
func constant(parts []string) (float64, bool) {
	if len(parts) != 2 || !namespaces[parts[0]] {
		return 0, false
	}
	v, ok := constants[parts[1]]
	return v, ok
}

func pow(x, y float64) float64 { return math.Pow(x, y) }

// pyMod follows Python's sign convention: the result takes the divisor's sign.
func pyMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}
