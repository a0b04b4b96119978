package translator

import (
	"errors"
	"strings"
	"testing"

	"slidergraph/internal/domain"
)

func TestTranslateDeclarationAndReturn(t *testing.T) {
	tr := NewDefault()

	src := "def f(t, csi):\n    b = 1.2\n    return csi + b * t\n"
	want := "    var b = 1.2;\n    return csi + b * t;\n"

	if got := tr.Translate(src); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTranslateIsDeterministic(t *testing.T) {
	tr := NewDefault()
	src := `def f(t, csi):
    b = 1.2
    c = .4
    return csi + b * t + c * np.sqrt(t * t)
`
	first := tr.Translate(src)
	second := tr.Translate(src)
	if first != second {
		t.Errorf("translations differ:\n%s\n---\n%s", first, second)
	}
}

func TestTranslateCases(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		src  string
		want string
	}{
		{
			name: "deeper nesting is dropped",
			src:  "def f(x, a):\n    y = x\n        z = 3\n    return y * a\n",
			want: "    var y = x;\n    return y * a;\n",
		},
		{
			name: "unindented lines are dropped",
			src:  "@decorator\ndef f(x, a):\n    return x\nprint(f(1, 2))\n",
			want: "    return x;\n",
		},
		{
			name: "indented method",
			src:  "    def g(u, a):\n        b = 2\n        return b * a * u\n",
			want: "    var b = 2;\n    return b * a * u;\n",
		},
		{
			name: "comments",
			src:  "def f(x, a):\n    # slope\n    b = 1  # inline\n    return b\n",
			want: "    var b = 1;\n    return b;\n",
		},
		{
			name: "return prefix in identifier",
			src:  "def f(x, a):\n    return_rate = 2\n    return return_rate * x\n",
			want: "    var return_rate = 2;\n    return return_rate * x;\n",
		},
		{
			name: "crlf line endings",
			src:  "def f(x, a):\r\n    b = 3\r\n    return b\r\n",
			want: "    var b = 3;\n    return b;\n",
		},
		{
			name: "custom units and keyword",
			cfg:  Config{SourceIndent: "\t", TargetIndent: "  ", Keyword: "let"},
			src:  "def f(x, a):\n\tb = 3\n\treturn b + np.abs(x)\n",
			want: "  let b = 3;\n  return b + Math.abs(x);\n",
		},
		{
			name: "bare assignments",
			cfg:  Config{Keyword: "-"},
			src:  "def f(x, a):\n    b = 3\n    return b\n",
			want: "    b = 3;\n    return b;\n",
		},
		{
			name: "body without signature",
			src:  "    b = 3\n    return b\n",
			want: "    var b = 3;\n    return b;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.cfg).Translate(tt.src)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTranslateMappingPreservesCounts(t *testing.T) {
	tr := NewDefault()
	src := `def f(x, a):
    b = np.sqrt(x) + np.sqrt(a)
    c = np.sin(x) * np.cos(x) / np.log(a)
    d = np.pi * np.pi * np.pi
    return pow(b, 2) + c + d
`
	keys := map[string]string{
		"np.sqrt": "Math.sqrt",
		"np.sin":  "Math.sin",
		"np.cos":  "Math.cos",
		"np.log(": "Math.log(",
		"np.pi":   "Math.PI",
	}

	got := tr.Translate(src)
	for from, to := range keys {
		if n := strings.Count(got, from); n != 0 {
			t.Errorf("%s: %d occurrences left", from, n)
		}
		if want, n := strings.Count(src, from), strings.Count(got, to); want != n {
			t.Errorf("%s: expected %d occurrences of %s, got %d", from, want, to, n)
		}
	}
	if n := strings.Count(got, "Math.pow"); n != 1 {
		t.Errorf("expected 1 Math.pow, got %d", n)
	}
}

func TestTranslateMappingOrder(t *testing.T) {
	tr := NewDefault()
	src := "def f(x, a):\n    return np.log10(x) + np.log(x) + np.atan2(x, a) + np.atan(x) + np.exp(np.e)\n"
	want := "    return Math.log10(x) + Math.log(x) + Math.atan2(x, a) + Math.atan(x) + Math.exp(Math.E);\n"

	if got := tr.Translate(src); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Substitution is literal, so keys that are substrings of longer names
// over-match. These cases pin that behaviour.
func TestTranslateMappingOverMatch(t *testing.T) {
	tr := NewDefault()
	tests := []struct {
		src  string
		want string
	}{
		{"def f(x, a):\n    return np.power(x, a)\n", "    return np.Math.power(x, a);\n"},
		{"def f(x, a):\n    return np.einsum(x)\n", "    return Math.Einsum(x);\n"},
		{"def f(x, a):\n    power = 2\n    return x\n", "    var Math.power = 2;\n    return x;\n"},
	}
	for _, tt := range tests {
		if got := tr.Translate(tt.src); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestAnalyzeEmptyBody(t *testing.T) {
	tr := NewDefault()

	out, report, err := tr.Analyze("def f(x, a):\npass\n")
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if report.Dropped != 1 {
		t.Errorf("expected 1 dropped line, got %d", report.Dropped)
	}

	var warn *domain.MalformedInputWarning
	if !errors.As(err, &warn) {
		t.Fatalf("expected MalformedInputWarning, got %v", err)
	}
	if !errors.Is(err, domain.ErrMalformed) {
		t.Error("expected errors.Is(err, ErrMalformed)")
	}
	if tr.Translate("") != "" {
		t.Error("expected empty translation of empty input")
	}
}

func TestAnalyzeReport(t *testing.T) {
	tr := NewDefault()
	_, report, err := tr.Analyze("def f(x, a):\n    b = 1\n    c = 2\n        d = 3\n    return b\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Declarations != 2 || report.Returns != 1 || report.Dropped != 1 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestMappingIsCopy(t *testing.T) {
	tr := NewDefault()
	m := tr.Mapping()
	if len(m) != 15 {
		t.Fatalf("expected 15 entries, got %d", len(m))
	}
	m[0].To = "broken"
	if tr.Mapping()[0].To != "Math.sqrt" {
		t.Error("Mapping exposed internal table")
	}
}

func TestIsReturn(t *testing.T) {
	tests := map[string]bool{
		"return x":     true,
		"return":       true,
		"return(x)":    true,
		"returns = 2":  false,
		"x = return_a": false,
	}
	for in, want := range tests {
		if got := IsReturn(in); got != want {
			t.Errorf("IsReturn(%q) = %v, want %v", in, got, want)
		}
	}
}
