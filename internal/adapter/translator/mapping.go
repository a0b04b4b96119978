package translator

// Replacement maps one numpy spelling to its JavaScript Math equivalent.
type Replacement struct {
	From string
	To   string
}

// defaultMapping is applied in order. "np.log(" and "np.atan(" keep their
// parenthesis so they do not swallow np.log10 and np.atan2, and np.exp runs
// before np.e for the same reason.
var defaultMapping = []Replacement{
	{"np.sqrt", "Math.sqrt"},
	{"np.log10", "Math.log10"},
	{"np.sin", "Math.sin"},
	{"np.cos", "Math.cos"},
	{"np.tan", "Math.tan"},
	{"np.atan2", "Math.atan2"},
	{"np.acos", "Math.acos"},
	{"np.asin", "Math.asin"},
	{"np.exp", "Math.exp"},
	{"np.abs", "Math.abs"},
	{"np.log(", "Math.log("},
	{"np.atan(", "Math.atan("},
	{"pow", "Math.pow"},
	{"np.pi", "Math.PI"},
	{"np.e", "Math.E"},
}

// DefaultMapping returns a copy of the identifier table.
func DefaultMapping() []Replacement {
	out := make([]Replacement, len(defaultMapping))
	copy(out, defaultMapping)
	return out
}
