package domain

import (
	"fmt"
	"math"
	"time"
)

type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale accepts the spellings used in config files and on the command line.
func ParseScale(s string) (Scale, error) {
	switch s {
	case "", "lin", "linear":
		return ScaleLinear, nil
	case "log", "log10", "logarithmic":
		return ScaleLog, nil
	}
	return "", fmt.Errorf("unknown scale %q", s)
}

// LayoutOptions are the raw, untransformed layout inputs.
type LayoutOptions struct {
	XMin, XMax float64
	YMin, YMax float64
	VMin, VMax float64

	XLabel string
	YLabel string

	StartPoint int
	SampleSize int
	Scale      Scale
}

// DefaultLayoutOptions mirrors the widget defaults.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		XMin:       -1,
		XMax:       1,
		YMin:       -1,
		YMax:       1,
		VMin:       -1e10,
		VMax:       1e10,
		XLabel:     "x",
		YLabel:     "y",
		StartPoint: 0,
		SampleSize: 300,
		Scale:      ScaleLinear,
	}
}

// GraphLayout is the resolved display layout. In log scale the display
// window is already in log10 space.
type GraphLayout struct {
	XMin, XMax float64
	YMin, YMax float64
	VMin, VMax float64

	XLabel string
	YLabel string

	StartPoint int
	SampleSize int
	Scale      Scale
}

// NewGraphLayout validates opts and applies the log10 transform to the
// display window when opts.Scale is ScaleLog.
func NewGraphLayout(opts LayoutOptions) (GraphLayout, error) {
	if opts.Scale == "" {
		opts.Scale = ScaleLinear
	}
	if opts.SampleSize <= 0 {
		return GraphLayout{}, fmt.Errorf("%w: sample size must be positive, got %d", ErrInvalidLayout, opts.SampleSize)
	}

	bounds := []struct {
		name string
		v    *float64
	}{
		{"xmin", &opts.XMin},
		{"xmax", &opts.XMax},
		{"ymin", &opts.YMin},
		{"ymax", &opts.YMax},
	}

	switch opts.Scale {
	case ScaleLinear:
	case ScaleLog:
		for _, b := range bounds {
			if !(*b.v > 0) {
				return GraphLayout{}, &InvalidDomainError{Field: b.name, Value: *b.v}
			}
		}
		for _, b := range bounds {
			*b.v = math.Log10(*b.v)
		}
	default:
		return GraphLayout{}, fmt.Errorf("%w: unknown scale %q", ErrInvalidLayout, opts.Scale)
	}

	if opts.XMin >= opts.XMax {
		return GraphLayout{}, fmt.Errorf("%w: xmin %g must be below xmax %g", ErrInvalidLayout, opts.XMin, opts.XMax)
	}
	if opts.YMin >= opts.YMax {
		return GraphLayout{}, fmt.Errorf("%w: ymin %g must be below ymax %g", ErrInvalidLayout, opts.YMin, opts.YMax)
	}
	if opts.VMin > opts.VMax {
		return GraphLayout{}, fmt.Errorf("%w: slider min %g exceeds max %g", ErrInvalidLayout, opts.VMin, opts.VMax)
	}

	return GraphLayout(opts), nil
}

// StartInRange reports whether the slider start lies within [VMin, VMax].
func (l GraphLayout) StartInRange() bool {
	p := float64(l.StartPoint)
	return p >= l.VMin && p <= l.VMax
}

// Samples is a sampled curve ready for a plot surface.
type Samples struct {
	Param float64   `json:"param"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// Frame bundles what a plot surface needs to draw one curve.
type Frame struct {
	Samples   Samples `json:"samples"`
	ParamName string  `json:"param_name"`
	XMin      float64 `json:"xmin"`
	XMax      float64 `json:"xmax"`
	YMin      float64 `json:"ymin"`
	YMax      float64 `json:"ymax"`
	XLabel    string  `json:"xlabel"`
	YLabel    string  `json:"ylabel"`
	Scale     Scale   `json:"scale"`
}

// StoredDescriptor is a generated descriptor as persisted by the store.
type StoredDescriptor struct {
	Key        string    `json:"key"`
	Path       string    `json:"path"`
	Function   string    `json:"function"`
	SourceHash string    `json:"source_hash"`
	ConfigHash string    `json:"config_hash"`
	Descriptor string    `json:"descriptor"`
	CreatedAt  time.Time `json:"created_at"`
}
