// Package source acquires the literal text of Python functions.
package source

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"slidergraph/internal/domain"
)

var defRe = regexp.MustCompile(`^([ \t]*)def\s+([A-Za-z_]\w*)\s*\(`)

// Literal serves text that the caller already holds.
type Literal struct {
	Text string
	Name string
}

func (l Literal) Source() (string, error) {
	if strings.TrimSpace(l.Text) == "" {
		return "", &domain.AcquisitionError{Origin: l.Origin(), Err: fmt.Errorf("empty source")}
	}
	return l.Text, nil
}

func (l Literal) Origin() string {
	if l.Name != "" {
		return "literal " + l.Name
	}
	return "literal"
}

// File extracts one function definition from a Python file.
type File struct {
	Path     string
	Function string
}

func (f File) Origin() string {
	return fmt.Sprintf("%s:%s", f.Path, f.Function)
}

func (f File) Source() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", &domain.AcquisitionError{Origin: f.Origin(), Err: err}
	}
	text, ok := Extract(string(data), f.Function)
	if !ok {
		return "", &domain.AcquisitionError{Origin: f.Origin(), Err: fmt.Errorf("function %q not found", f.Function)}
	}
	return text, nil
}

// Extract returns the definition of name: its def line and every following
// line that is blank or indented deeper than the def. Trailing blank lines
// are trimmed and the result ends with a newline.
func Extract(content, name string) (string, bool) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	for i, line := range lines {
		m := defRe.FindStringSubmatch(line)
		if m == nil || m[2] != name {
			continue
		}
		indent := len(m[1])

		end := i + 1
		last := i
		for ; end < len(lines); end++ {
			l := lines[end]
			if strings.TrimSpace(l) == "" {
				continue
			}
			if leading(l) <= indent {
				break
			}
			last = end
		}
		return strings.Join(lines[i:last+1], "\n") + "\n", true
	}
	return "", false
}

// Function describes one def found in a file.
type Function struct {
	Name   string   `json:"name"`
	Line   int      `json:"line"`
	Nested bool     `json:"nested"`
	Args   []string `json:"args"`
}

// ListFunctions returns every def in content, in file order.
func ListFunctions(content string) []Function {
	var out []Function
	for i, line := range strings.Split(content, "\n") {
		m := defRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, Function{
			Name:   m[2],
			Line:   i + 1,
			Nested: m[1] != "",
			Args:   signatureArgs(line),
		})
	}
	return out
}

func signatureArgs(line string) []string {
	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open < 0 || closing < open {
		return nil
	}
	var args []string
	for _, a := range strings.Split(line[open+1:closing], ",") {
		a, _, _ = strings.Cut(a, "=")
		a, _, _ = strings.Cut(a, ":")
		a = strings.TrimSpace(a)
		if a == "" || a == "self" || a == "/" || strings.HasPrefix(a, "*") {
			continue
		}
		args = append(args, a)
	}
	return args
}

func leading(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
