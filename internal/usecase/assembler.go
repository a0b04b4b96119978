package usecase

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"slidergraph/internal/domain"
	"slidergraph/internal/port"
)

const (
	DefaultBeginMarker = "SliderGraph({\n"
	DefaultEndMarker   = "});"
	DefaultBlockIndent = "    "
	DefaultPrecision   = 6
)

// LimitsOverride replaces individual display bounds for one rendering.
// A nil field falls back to the layout.
type LimitsOverride struct {
	XMin, XMax, YMin, YMax *float64
}

// DomainOverride replaces the slider range for one rendering.
type DomainOverride struct {
	XMin, XMax *float64
}

// AxesOverride replaces the axis labels for one rendering.
type AxesOverride struct {
	X, Y *string
}

// SliderOverride replaces the slider start or the sample count.
type SliderOverride struct {
	StartPoint, SampleSize *int
}

func Float(v float64) *float64 { return &v }
func String(s string) *string  { return &s }
func Int(i int) *int           { return &i }

// Option configures an Assembler.
type Option func(*Assembler)

// WithMarkers sets the begin and end markers. Empty values keep the defaults.
func WithMarkers(begin, end string) Option {
	return func(a *Assembler) {
		if begin != "" {
			a.begin = begin
		}
		if end != "" {
			a.end = end
		}
	}
}

func WithPrecision(p int) Option {
	return func(a *Assembler) {
		if p >= 0 {
			a.precision = p
		}
	}
}

// WithBlockIndent sets the prefix put before every block line in Assemble.
func WithBlockIndent(indent string) Option {
	return func(a *Assembler) { a.indent = indent }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSourceIndent sets the indentation unit the preview evaluator expects.
func WithSourceIndent(indent string) Option {
	return func(a *Assembler) { a.sourceIndent = indent }
}

// WithNumericFunc supplies the preview function directly instead of
// compiling it from the source.
func WithNumericFunc(fn port.NumericFunc) Option {
	return func(a *Assembler) { a.numeric = fn }
}

// Assembler builds a SliderGraph descriptor from a function and a layout.
// It keeps the last rendering of each block so that a single block can be
// regenerated with overrides.
type Assembler struct {
	fn     *FunctionDescriptor
	layout domain.GraphLayout

	begin        string
	end          string
	indent       string
	precision    int
	sourceIndent string
	logger       *slog.Logger
	numeric      port.NumericFunc

	equation string
	limits   string
	domain   string
	axes     string
	slider   string
}

// NewAssembler renders every block once from fn and layout.
func NewAssembler(fn *FunctionDescriptor, layout domain.GraphLayout, opts ...Option) *Assembler {
	a := &Assembler{
		fn:        fn,
		layout:    layout,
		begin:     DefaultBeginMarker,
		end:       DefaultEndMarker,
		indent:    DefaultBlockIndent,
		precision: DefaultPrecision,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	if !layout.StartInRange() {
		a.logger.Warn("slider start point outside slider range",
			"start", layout.StartPoint, "vmin", layout.VMin, "vmax", layout.VMax)
	}

	a.SetEquation("")
	a.SetLimits(LimitsOverride{})
	a.SetDomain(DomainOverride{})
	a.SetAxes(AxesOverride{})
	a.SetSlider(SliderOverride{})
	return a
}

func (a *Assembler) Layout() domain.GraphLayout { return a.layout }

func (a *Assembler) Function() *FunctionDescriptor { return a.fn }

// Equation renders the function literal around the translated body.
func (a *Assembler) Equation() string {
	body := a.fn.TranslatedText()
	if body == "" {
		a.logger.Warn("empty equation body, check the function source",
			"origin", a.fn.Origin(), "error", &domain.MalformedInputWarning{})
	}

	var b strings.Builder
	b.WriteString("equation: function(")
	b.WriteString(a.fn.Variable())
	b.WriteString(", ")
	b.WriteString(a.fn.Parameter())
	b.WriteString("){\n")
	b.WriteString(body)
	b.WriteString("},\n")
	return b.String()
}

// Limits renders the display window.
func (a *Assembler) Limits(o LimitsOverride) string {
	return "limits: { " +
		"xmin: " + a.num(pick(o.XMin, a.layout.XMin)) + ", " +
		"xmax: " + a.num(pick(o.XMax, a.layout.XMax)) + ", " +
		"ymin: " + a.num(pick(o.YMin, a.layout.YMin)) + ", " +
		"ymax: " + a.num(pick(o.YMax, a.layout.YMax)) + " },\n"
}

// Domain renders the slider range.
func (a *Assembler) Domain(o DomainOverride) string {
	return "domain: { " +
		"xmin: " + a.num(pick(o.XMin, a.layout.VMin)) + ", " +
		"xmax: " + a.num(pick(o.XMax, a.layout.VMax)) + " },\n"
}

// Axes renders the axis labels as single-quoted strings.
func (a *Assembler) Axes(o AxesOverride) string {
	return "axes: { " +
		"x: " + quote(pick(o.X, a.layout.XLabel)) + ", " +
		"y: " + quote(pick(o.Y, a.layout.YLabel)) + " },\n"
}

// Slider renders both the start point and the sample size.
func (a *Assembler) Slider(o SliderOverride) string {
	return "startPoint: " + strconv.Itoa(pick(o.StartPoint, a.layout.StartPoint)) + ",\n" +
		"sampleSize: " + strconv.Itoa(pick(o.SampleSize, a.layout.SampleSize)) + "\n"
}

// SetEquation stores a custom equation block, or regenerates it when custom is "".
func (a *Assembler) SetEquation(custom string) {
	if custom == "" {
		custom = a.Equation()
	}
	a.equation = custom
}

func (a *Assembler) SetLimits(o LimitsOverride) { a.limits = a.Limits(o) }

func (a *Assembler) SetDomain(o DomainOverride) { a.domain = a.Domain(o) }

func (a *Assembler) SetAxes(o AxesOverride) { a.axes = a.Axes(o) }

func (a *Assembler) SetSlider(o SliderOverride) { a.slider = a.Slider(o) }

// SetMarkers replaces the begin and end markers; empty values restore the defaults.
func (a *Assembler) SetMarkers(begin, end string) {
	a.begin, a.end = DefaultBeginMarker, DefaultEndMarker
	WithMarkers(begin, end)(a)
}

// Assemble concatenates the stored blocks between the markers.
func (a *Assembler) Assemble() string {
	var b strings.Builder
	b.WriteString(a.begin)
	for _, block := range []string{a.equation, a.limits, a.domain, a.axes, a.slider} {
		b.WriteString(indentLines(block, a.indent))
	}
	b.WriteString(a.end)
	return b.String()
}

func (a *Assembler) num(v float64) string {
	return strconv.FormatFloat(v, 'f', a.precision, 64)
}

func pick[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func quote(s string) string {
	return "'" + labelEscaper.Replace(s) + "'"
}

func indentLines(block, indent string) string {
	if indent == "" {
		return block
	}
	lines := strings.SplitAfter(block, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" || l == "\n" {
			b.WriteString(l)
			continue
		}
		b.WriteString(indent)
		b.WriteString(l)
	}
	return b.String()
}
