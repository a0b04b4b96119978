package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"slidergraph/config"
	"slidergraph/internal/adapter/source"
	"slidergraph/internal/port"
	"slidergraph/internal/usecase"
)

// functionFlags select one function and its variable and parameter names.
type functionFlags struct {
	file      string
	name      string
	variable  string
	parameter string
}

func (f *functionFlags) register(cmd *cobra.Command, withNames bool) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Python file, or - for stdin (required)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "function name (default: the only function in the file)")
	if withNames {
		cmd.Flags().StringVar(&f.variable, "var", "", "plotted variable (default: first argument)")
		cmd.Flags().StringVar(&f.parameter, "param", "", "slider parameter (default: second argument)")
	}
	cmd.MarkFlagRequired("file")
}

// provider resolves the flags into a source provider and the selected
// function's signature arguments.
func (f *functionFlags) provider() (port.SourceProvider, []string, error) {
	var content string
	if f.file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
	} else {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", f.file, err)
		}
		content = string(data)
	}

	fns := source.ListFunctions(content)
	var selected *source.Function
	switch {
	case f.name != "":
		for i := range fns {
			if fns[i].Name == f.name {
				selected = &fns[i]
				break
			}
		}
		if selected == nil {
			return nil, nil, fmt.Errorf("function %q not found in %s", f.name, f.file)
		}
	case len(fns) == 1:
		selected = &fns[0]
	case len(fns) == 0:
		// A bare body is translated as is.
		return source.Literal{Text: content, Name: f.file}, nil, nil
	default:
		return nil, nil, fmt.Errorf("%s defines %d functions, pick one with --name", f.file, len(fns))
	}

	if f.file == "-" {
		text, _ := source.Extract(content, selected.Name)
		return source.Literal{Text: text, Name: selected.Name}, selected.Args, nil
	}
	return source.File{Path: f.file, Function: selected.Name}, selected.Args, nil
}

// names returns the variable and parameter, falling back to the signature.
func (f *functionFlags) names(args []string) ([]string, []string) {
	variable, parameter := f.variable, f.parameter
	if variable == "" && len(args) > 0 {
		variable = args[0]
	}
	if parameter == "" && len(args) > 1 {
		parameter = args[1]
	}
	var vars, params []string
	if variable != "" {
		vars = []string{variable}
	}
	if parameter != "" {
		params = []string{parameter}
	}
	return vars, params
}

// descriptor builds the function descriptor the flags select.
func (f *functionFlags) descriptor(c *config.Config) (*usecase.FunctionDescriptor, error) {
	src, args, err := f.provider()
	if err != nil {
		return nil, err
	}
	tr, err := usecase.NewTranslator(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}
	vars, params := f.names(args)
	return usecase.NewFunctionDescriptor(src, vars, params, tr)
}

// layoutFlags override the configured layout before it is resolved.
type layoutFlags struct {
	xmin, xmax, ymin, ymax float64
	vmin, vmax             float64
	xlabel, ylabel         string
	start, samples         int
	scale                  string
}

func (l *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&l.xmin, "xmin", 0, "display window x minimum")
	fl.Float64Var(&l.xmax, "xmax", 0, "display window x maximum")
	fl.Float64Var(&l.ymin, "ymin", 0, "display window y minimum")
	fl.Float64Var(&l.ymax, "ymax", 0, "display window y maximum")
	fl.Float64Var(&l.vmin, "vmin", 0, "slider minimum")
	fl.Float64Var(&l.vmax, "vmax", 0, "slider maximum")
	fl.StringVar(&l.xlabel, "xlabel", "", "x axis label")
	fl.StringVar(&l.ylabel, "ylabel", "", "y axis label")
	fl.IntVar(&l.start, "start", 0, "slider start point")
	fl.IntVar(&l.samples, "samples", 0, "number of sample points")
	fl.StringVar(&l.scale, "scale", "", "linear or log")
}

// apply copies the flags the user set onto a copy of base.
func (l *layoutFlags) apply(cmd *cobra.Command, base config.LayoutConfig) config.LayoutConfig {
	changed := cmd.Flags().Changed
	if changed("xmin") {
		base.XMin = l.xmin
	}
	if changed("xmax") {
		base.XMax = l.xmax
	}
	if changed("ymin") {
		base.YMin = l.ymin
	}
	if changed("ymax") {
		base.YMax = l.ymax
	}
	if changed("vmin") {
		base.VMin = l.vmin
	}
	if changed("vmax") {
		base.VMax = l.vmax
	}
	if changed("xlabel") {
		base.XLabel = l.xlabel
	}
	if changed("ylabel") {
		base.YLabel = l.ylabel
	}
	if changed("start") {
		base.StartPoint = l.start
	}
	if changed("samples") {
		base.SampleSize = l.samples
	}
	if changed("scale") {
		base.Scale = l.scale
	}
	return base
}

// assembler builds an assembler from the function and layout flags.
func assembler(cmd *cobra.Command, fn *functionFlags, lf *layoutFlags) (*usecase.Assembler, error) {
	c := GetConfig()
	fd, err := fn.descriptor(c)
	if err != nil {
		return nil, err
	}
	layout, err := usecase.LayoutFromConfig(lf.apply(cmd, c.Layout))
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return usecase.NewAssembler(fd, layout, usecase.AssemblerOptions(c, GetLogger())...), nil
}
