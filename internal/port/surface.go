package port

import "slidergraph/internal/domain"

// NumericFunc evaluates a plotted function at variable x with slider value p.
type NumericFunc func(x, p float64) (float64, error)

// PlotSurface is the external rendering collaborator. Implementations own
// every piece of rendering state.
type PlotSurface interface {
	// Render draws one frame to the named target (a file path for static
	// surfaces, ignored by streaming ones).
	Render(target string, frame domain.Frame) error
}
