package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"slidergraph/internal/adapter/surface"
	"slidergraph/internal/usecase"
)

var (
	previewFn          functionFlags
	previewLayout      layoutFlags
	previewOut         string
	previewValue       float64
	previewMode        string
	previewInteractive bool
	previewWidth       int
	previewHeight      int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Sample a function locally",
	Long: `Evaluate the function at the configured number of points with the parameter
fixed, and hand the samples to a plot surface. Without --interactive the frame
is written as JSON; with it, a character plot is redrawn for every parameter
value read from stdin, one per line.

Examples:
  slidergraph preview -f model.py -n growth --value 2 --out growth.json
  slidergraph preview -f model.py -n decay --scale log --xmin 1 --xmax 1000 -i`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewFn.register(previewCmd, true)
	previewLayout.register(previewCmd)
	previewCmd.Flags().StringVar(&previewOut, "out", "", "JSON output file")
	previewCmd.Flags().Float64Var(&previewValue, "value", 0, "parameter value (default: slider start point)")
	previewCmd.Flags().StringVar(&previewMode, "mode", "display", "x range: display or domain")
	previewCmd.Flags().BoolVarP(&previewInteractive, "interactive", "i", false, "redraw for every value read from stdin")
	previewCmd.Flags().IntVar(&previewWidth, "width", 72, "plot width in characters")
	previewCmd.Flags().IntVar(&previewHeight, "height", 20, "plot height in characters")
}

func runPreview(cmd *cobra.Command, args []string) error {
	asm, err := assembler(cmd, &previewFn, &previewLayout)
	if err != nil {
		return err
	}

	if previewInteractive {
		if previewFn.file == "-" {
			return errors.New("--interactive reads parameter values from stdin, pass the source with a file")
		}
		return runInteractive(cmd.Context(), asm)
	}

	if previewOut == "" {
		return errors.New("--out is required without --interactive")
	}
	mode, err := usecase.ParseSampleMode(previewMode)
	if err != nil {
		return err
	}
	value := float64(asm.Layout().StartPoint)
	if cmd.Flags().Changed("value") {
		value = previewValue
	}

	if err := asm.RenderStatic(surface.NewJSONSurface(), previewOut, value, mode); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	fmt.Printf("Samples written to %s\n", previewOut)
	return nil
}

func runInteractive(ctx context.Context, asm *usecase.Assembler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	events := make(chan float64)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				GetLogger().Warn("ignoring parameter value", "input", line, "error", err)
				continue
			}
			select {
			case events <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	frames, err := asm.RenderInteractive(ctx, surface.NewTextSurface(os.Stdout, previewWidth, previewHeight), events)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	fmt.Printf("%d frames drawn\n", frames)
	return nil
}
