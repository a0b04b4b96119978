package usecase

import (
	"context"
	"fmt"
	"math"

	"slidergraph/internal/adapter/evaluator"
	"slidergraph/internal/domain"
	"slidergraph/internal/port"
)

// SampleMode selects the x range of a preview.
type SampleMode int

const (
	// ModeDisplay samples x over the display window.
	ModeDisplay SampleMode = iota
	// ModeDomain samples x over the slider range.
	ModeDomain
)

func ParseSampleMode(s string) (SampleMode, error) {
	switch s {
	case "", "display":
		return ModeDisplay, nil
	case "domain":
		return ModeDomain, nil
	}
	return 0, fmt.Errorf("unknown sample mode %q", s)
}

// NumericFunc returns the preview function, compiling the source on first use.
func (a *Assembler) NumericFunc() (port.NumericFunc, error) {
	if a.numeric != nil {
		return a.numeric, nil
	}
	prog, err := evaluator.Compile(a.fn.Source(), a.fn.Variable(), a.fn.Parameter(), a.sourceIndent)
	if err != nil {
		return nil, fmt.Errorf("compile %s for preview: %w", a.fn.Origin(), err)
	}
	a.numeric = prog.Func()
	return a.numeric, nil
}

// Samples evaluates the function at SampleSize evenly spaced x values with
// the parameter fixed at param. In log scale x is in log10 space: the
// function is called with 10^x and the result is plotted as log10.
func (a *Assembler) Samples(param float64, mode SampleMode) (domain.Samples, error) {
	f, err := a.NumericFunc()
	if err != nil {
		return domain.Samples{}, err
	}

	lo, hi, err := a.sampleRange(mode)
	if err != nil {
		return domain.Samples{}, err
	}

	xs := linspace(lo, hi, a.layout.SampleSize)
	ys := make([]float64, len(xs))
	logScale := a.layout.Scale == domain.ScaleLog
	for i, x := range xs {
		arg := x
		if logScale {
			arg = math.Pow(10, x)
		}
		y, err := f(arg, param)
		if err != nil {
			return domain.Samples{}, fmt.Errorf("evaluate at x=%g: %w", arg, err)
		}
		if logScale {
			y = math.Log10(y)
		}
		ys[i] = y
	}

	return domain.Samples{Param: param, X: xs, Y: ys}, nil
}

func (a *Assembler) sampleRange(mode SampleMode) (float64, float64, error) {
	l := a.layout
	switch mode {
	case ModeDisplay:
		return l.XMin, l.XMax, nil
	case ModeDomain:
		if l.Scale != domain.ScaleLog {
			return l.VMin, l.VMax, nil
		}
		if !(l.VMin > 0) {
			return 0, 0, &domain.InvalidDomainError{Field: "vmin", Value: l.VMin}
		}
		if !(l.VMax > 0) {
			return 0, 0, &domain.InvalidDomainError{Field: "vmax", Value: l.VMax}
		}
		return math.Log10(l.VMin), math.Log10(l.VMax), nil
	}
	return 0, 0, fmt.Errorf("unknown sample mode %d", mode)
}

// Frame samples the curve and attaches the bounds and labels.
func (a *Assembler) Frame(param float64, mode SampleMode) (domain.Frame, error) {
	s, err := a.Samples(param, mode)
	if err != nil {
		return domain.Frame{}, err
	}
	l := a.layout
	return domain.Frame{
		Samples:   s,
		ParamName: a.fn.Parameter(),
		XMin:      l.XMin,
		XMax:      l.XMax,
		YMin:      l.YMin,
		YMax:      l.YMax,
		XLabel:    l.XLabel,
		YLabel:    l.YLabel,
		Scale:     l.Scale,
	}, nil
}

// RenderStatic hands one frame at param to surface.
func (a *Assembler) RenderStatic(surface port.PlotSurface, target string, param float64, mode SampleMode) error {
	frame, err := a.Frame(param, mode)
	if err != nil {
		return err
	}
	return surface.Render(target, frame)
}

// RenderInteractive draws the start point, then one frame per slider value
// received on events, until events closes or ctx is done. Values outside the
// slider range are clamped. It returns the number of frames drawn.
func (a *Assembler) RenderInteractive(ctx context.Context, surface port.PlotSurface, events <-chan float64) (int, error) {
	draw := func(p float64) error {
		p = math.Max(a.layout.VMin, math.Min(a.layout.VMax, p))
		frame, err := a.Frame(p, ModeDisplay)
		if err != nil {
			return err
		}
		return surface.Render("", frame)
	}

	if err := draw(float64(a.layout.StartPoint)); err != nil {
		return 0, err
	}
	frames := 1

	for {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case p, ok := <-events:
			if !ok {
				return frames, nil
			}
			if err := draw(p); err != nil {
				return frames, err
			}
			frames++
		}
	}
}

func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}
