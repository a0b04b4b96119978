package surface

import (
	"fmt"
	"io"
	"math"
	"strings"

	"slidergraph/internal/domain"
)

// TextSurface draws frames as character plots on a writer. It serves the
// interactive preview, which redraws on every slider value.
type TextSurface struct {
	w      io.Writer
	width  int
	height int
}

func NewTextSurface(w io.Writer, width, height int) *TextSurface {
	if width < 10 {
		width = 60
	}
	if height < 5 {
		height = 20
	}
	return &TextSurface{w: w, width: width, height: height}
}

// Render ignores target and writes the plot to the surface writer.
func (s *TextSurface) Render(_ string, frame domain.Frame) error {
	grid := make([][]byte, s.height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", s.width))
	}

	xs, ys := frame.Samples.X, frame.Samples.Y
	for i := range xs {
		if i >= len(ys) {
			break
		}
		col, ok := cell(xs[i], frame.XMin, frame.XMax, s.width)
		if !ok {
			continue
		}
		row, ok := cell(ys[i], frame.YMin, frame.YMax, s.height)
		if !ok {
			continue
		}
		grid[s.height-1-row][col] = '*'
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s = %g\n", frame.ParamName, frame.Samples.Param)
	fmt.Fprintf(&b, "%10.3g +%s+\n", frame.YMax, strings.Repeat("-", s.width))
	for _, line := range grid {
		fmt.Fprintf(&b, "%10s |%s|\n", "", line)
	}
	fmt.Fprintf(&b, "%10.3g +%s+\n", frame.YMin, strings.Repeat("-", s.width))
	fmt.Fprintf(&b, "%10s  %-*.3g%*.3g\n", "", s.width/2, frame.XMin, s.width-s.width/2, frame.XMax)
	fmt.Fprintf(&b, "%10s  %s\n", "", frame.XLabel)

	_, err := io.WriteString(s.w, b.String())
	return err
}

// cell maps v in [lo, hi] onto 0..n-1.
func cell(v, lo, hi float64, n int) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi || hi <= lo {
		return 0, false
	}
	i := int((v-lo)/(hi-lo)*float64(n-1) + 0.5)
	return i, true
}
