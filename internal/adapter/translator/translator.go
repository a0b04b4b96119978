package translator

import (
	"strings"

	"slidergraph/internal/domain"
)

const (
	DefaultSourceIndent = "    "
	DefaultTargetIndent = "    "
	DefaultKeyword      = "var"
)

// Config controls the indentation units and the declaration keyword.
type Config struct {
	SourceIndent string
	TargetIndent string
	Keyword      string
	Mapping      []Replacement
}

// ExpressionTranslator rewrites a one-level Python function body as
// JavaScript statements. It classifies lines by indentation and keyword,
// it does not parse expressions.
type ExpressionTranslator struct {
	sourceIndent string
	targetIndent string
	keyword      string
	mapping      []Replacement
}

// Report describes what Analyze kept and dropped.
type Report struct {
	Declarations int
	Returns      int
	Dropped      int
}

// New creates a translator. Zero fields in cfg fall back to the defaults,
// except Keyword which may be set to "-" to emit bare assignments.
func New(cfg Config) *ExpressionTranslator {
	if cfg.SourceIndent == "" {
		cfg.SourceIndent = DefaultSourceIndent
	}
	if cfg.TargetIndent == "" {
		cfg.TargetIndent = DefaultTargetIndent
	}
	switch cfg.Keyword {
	case "":
		cfg.Keyword = DefaultKeyword
	case "-":
		cfg.Keyword = ""
	}
	if cfg.Mapping == nil {
		cfg.Mapping = defaultMapping
	}
	return &ExpressionTranslator{
		sourceIndent: cfg.SourceIndent,
		targetIndent: cfg.TargetIndent,
		keyword:      cfg.Keyword,
		mapping:      cfg.Mapping,
	}
}

// NewDefault returns a translator with four-space units and "var" declarations.
func NewDefault() *ExpressionTranslator {
	return New(Config{})
}

// Mapping returns a copy of the identifier table in application order.
func (t *ExpressionTranslator) Mapping() []Replacement {
	out := make([]Replacement, len(t.mapping))
	copy(out, t.mapping)
	return out
}

// Translate returns the translated body. It never fails; input without a
// recognizable statement yields "".
func (t *ExpressionTranslator) Translate(source string) string {
	out, _, _ := t.Analyze(source)
	return out
}

// Analyze translates source and reports the line classification. The error
// is a *domain.MalformedInputWarning when nothing was emitted; the returned
// text is valid either way.
func (t *ExpressionTranslator) Analyze(source string) (string, Report, error) {
	var (
		report Report
		sb     strings.Builder
	)

	_, stmts, dropped := t.Statements(source)
	report.Dropped = dropped

	for _, stmt := range stmts {
		sb.WriteString(t.targetIndent)
		if IsReturn(stmt) {
			report.Returns++
		} else {
			report.Declarations++
			if t.keyword != "" {
				sb.WriteString(t.keyword)
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(stmt)
		sb.WriteString(";\n")
	}

	out := t.applyMapping(sb.String())
	if out == "" {
		return "", report, &domain.MalformedInputWarning{Dropped: report.Dropped}
	}
	return out, report, nil
}

// Statements splits source into its signature line and the one-level body
// statements, in source order and without comments. Non-blank lines that are
// neither are counted as dropped.
func (t *ExpressionTranslator) Statements(source string) (signature string, stmts []string, dropped int) {
	lines := SplitLines(source)
	sig, base := findSignature(lines)
	if sig >= 0 {
		signature = strings.TrimSpace(lines[sig])
	}

	for i, line := range lines {
		if i == sig || strings.TrimSpace(line) == "" {
			continue
		}
		body, ok := t.bodyStatement(line, base)
		if !ok {
			dropped++
			continue
		}
		stmts = append(stmts, body)
	}
	return signature, stmts, dropped
}

// bodyStatement returns the statement carried by a line indented by exactly
// one source unit past base, with comments and trailing blanks removed.
func (t *ExpressionTranslator) bodyStatement(line, base string) (string, bool) {
	if !strings.HasPrefix(line, base) {
		return "", false
	}
	line = line[len(base):]
	if !strings.HasPrefix(line, t.sourceIndent) {
		return "", false
	}
	body := line[len(t.sourceIndent):]
	if body == "" || body[0] == ' ' || body[0] == '\t' {
		return "", false
	}
	body = strings.TrimRight(StripComment(body), " \t")
	if body == "" {
		return "", false
	}
	return body, true
}

func (t *ExpressionTranslator) applyMapping(text string) string {
	for _, r := range t.mapping {
		if strings.Contains(text, r.From) {
			text = strings.ReplaceAll(text, r.From, r.To)
		}
	}
	return text
}

// SplitLines splits on newlines and drops carriage returns.
func SplitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// findSignature locates the def line and returns its index and leading
// whitespace, or -1 and "" when there is none.
func findSignature(lines []string) (int, string) {
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(trimmed, "def ") {
			return i, l[:len(l)-len(trimmed)]
		}
	}
	return -1, ""
}

// IsReturn reports whether a body statement is a return statement.
func IsReturn(stmt string) bool {
	if !strings.HasPrefix(stmt, "return") {
		return false
	}
	rest := stmt[len("return"):]
	if rest == "" {
		return true
	}
	return !isIdentByte(rest[0])
}

// StripComment cuts a trailing # comment. The numeric subset has no string
// literals, so the first # always starts a comment.
func StripComment(stmt string) string {
	if i := strings.IndexByte(stmt, '#'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
