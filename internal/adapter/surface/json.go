// Package surface holds the plot surfaces the assembler hands frames to.
package surface

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"slidergraph/internal/domain"
)

// JSONSurface writes each frame to a JSON file for an external plotter.
type JSONSurface struct{}

func NewJSONSurface() *JSONSurface {
	return &JSONSurface{}
}

type jsonFrame struct {
	domain.Frame
	Y []*float64 `json:"y"`
}

// Render writes frame to target. Non-finite samples are written as null.
func (s *JSONSurface) Render(target string, frame domain.Frame) error {
	if target == "" {
		return fmt.Errorf("json surface needs an output path")
	}

	ys := make([]*float64, len(frame.Samples.Y))
	for i, y := range frame.Samples.Y {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		v := y
		ys[i] = &v
	}
	out := jsonFrame{Frame: frame, Y: ys}
	out.Frame.Samples.Y = nil

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
