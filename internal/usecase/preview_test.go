package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidergraph/internal/adapter/evaluator"
	"slidergraph/internal/adapter/source"
	"slidergraph/internal/adapter/translator"
	"slidergraph/internal/domain"
)

type recordingSurface struct {
	targets []string
	frames  []domain.Frame
}

func (r *recordingSurface) Render(target string, frame domain.Frame) error {
	r.targets = append(r.targets, target)
	r.frames = append(r.frames, frame)
	return nil
}

func TestSamplesLinear(t *testing.T) {
	layout := newLayout(t, func(o *domain.LayoutOptions) { o.SampleSize = 11 })
	a := newAssembler(t, quadratic, layout)

	s, err := a.Samples(2, ModeDisplay)
	require.NoError(t, err)
	require.Len(t, s.X, 11)
	require.Len(t, s.Y, 11)
	assert.Equal(t, -5.0, s.X[0])
	assert.Equal(t, 5.0, s.X[10])
	assert.InDelta(t, 0.0, s.X[5], 1e-12)
	for i, x := range s.X {
		assert.InDelta(t, 2+1.2*x, s.Y[i], 1e-9)
	}
}

func TestSamplesDomainMode(t *testing.T) {
	layout := newLayout(t, func(o *domain.LayoutOptions) {
		o.VMin, o.VMax = 0, 1
		o.SampleSize = 3
	})
	a := newAssembler(t, quadratic, layout)

	s, err := a.Samples(0, ModeDomain)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, s.X)
}

func TestSamplesLogScale(t *testing.T) {
	layout := newLayout(t, func(o *domain.LayoutOptions) {
		o.Scale = domain.ScaleLog
		o.XMin, o.XMax = 1, 100
		o.YMin, o.YMax = 1, 1e4
		o.SampleSize = 3
	})
	fd, err := NewFunctionDescriptor(source.Literal{Text: "def f(t, a):\n    return t ** 2\n"}, []string{"t"}, []string{"a"}, translator.NewDefault())
	require.NoError(t, err)
	a := NewAssembler(fd, layout)

	s, err := a.Samples(0, ModeDisplay)
	require.NoError(t, err)
	// x = 0, 1, 2 in log space; f(10^x) = 10^(2x); y = 2x.
	for i, want := range []float64{0, 2, 4} {
		assert.InDelta(t, float64(i), s.X[i], 1e-12)
		assert.InDelta(t, want, s.Y[i], 1e-9)
	}
}

func TestSamplesLogDomainNeedsPositiveRange(t *testing.T) {
	layout := newLayout(t, func(o *domain.LayoutOptions) {
		o.Scale = domain.ScaleLog
		o.XMin, o.XMax = 1, 100
		o.YMin, o.YMax = 1, 100
		o.VMin, o.VMax = 0, 10
	})
	a := newAssembler(t, quadratic, layout)

	_, err := a.Samples(0, ModeDomain)
	var ide *domain.InvalidDomainError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, "vmin", ide.Field)
}

func TestSamplesWithInjectedFunc(t *testing.T) {
	layout := newLayout(t, func(o *domain.LayoutOptions) { o.SampleSize = 2 })
	a := newAssembler(t, quadratic, layout, WithNumericFunc(func(x, p float64) (float64, error) {
		return x * p, nil
	}))

	s, err := a.Samples(3, ModeDisplay)
	require.NoError(t, err)
	assert.Equal(t, []float64{-15, 15}, s.Y)

	boom := errors.New("boom")
	b := newAssembler(t, quadratic, layout, WithNumericFunc(func(x, p float64) (float64, error) {
		return 0, boom
	}))
	_, err = b.Samples(0, ModeDisplay)
	assert.ErrorIs(t, err, boom)
}

func TestSamplesCompileError(t *testing.T) {
	a := newAssembler(t, "def f(t, csi):\n    return csi +\n", newLayout(t, nil))
	_, err := a.Samples(0, ModeDisplay)
	assert.ErrorIs(t, err, evaluator.ErrSyntax)
}

func TestRenderStatic(t *testing.T) {
	a := newAssembler(t, quadratic, newLayout(t, func(o *domain.LayoutOptions) {
		o.XLabel = "t"
		o.SampleSize = 5
	}))
	surface := &recordingSurface{}

	require.NoError(t, a.RenderStatic(surface, "out.json", 1, ModeDisplay))
	require.Len(t, surface.frames, 1)
	assert.Equal(t, "out.json", surface.targets[0])

	f := surface.frames[0]
	assert.Equal(t, "t", f.XLabel)
	assert.Equal(t, "csi", f.ParamName)
	assert.Equal(t, -10.0, f.YMin)
	assert.Len(t, f.Samples.X, 5)
}

func TestRenderInteractive(t *testing.T) {
	a := newAssembler(t, quadratic, newLayout(t, func(o *domain.LayoutOptions) { o.SampleSize = 3 }))
	surface := &recordingSurface{}

	events := make(chan float64, 3)
	events <- 1
	events <- 100
	events <- -100
	close(events)

	n, err := a.RenderInteractive(context.Background(), surface, events)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	params := make([]float64, len(surface.frames))
	for i, f := range surface.frames {
		params[i] = f.Samples.Param
	}
	assert.Equal(t, []float64{0, 1, 5, -5}, params)
}

func TestRenderInteractiveCancel(t *testing.T) {
	a := newAssembler(t, quadratic, newLayout(t, func(o *domain.LayoutOptions) { o.SampleSize = 3 }))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	n, err := a.RenderInteractive(ctx, &recordingSurface{}, make(chan float64))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, n)
}

func TestLinspace(t *testing.T) {
	assert.Nil(t, linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, linspace(2, 3, 1))
	xs := linspace(0, 1, 4)
	assert.Equal(t, 1.0, xs[3])
	assert.InDelta(t, 1.0/3, xs[1], 1e-15)
	assert.False(t, math.IsNaN(xs[2]))
}

func TestParseSampleMode(t *testing.T) {
	m, err := ParseSampleMode("domain")
	require.NoError(t, err)
	assert.Equal(t, ModeDomain, m)

	_, err = ParseSampleMode("sideways")
	assert.Error(t, err)
}
