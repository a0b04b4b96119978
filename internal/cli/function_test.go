package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"slidergraph/config"
	"slidergraph/internal/adapter/source"
)

func TestLayoutFlagsApplyOnlyChanged(t *testing.T) {
	var lf layoutFlags
	cmd := &cobra.Command{Use: "test"}
	lf.register(cmd)
	if err := cmd.Flags().Parse([]string{"--xmax", "10", "--scale", "log", "--xlabel", "t"}); err != nil {
		t.Fatal(err)
	}

	base := config.DefaultConfig().Layout
	got := lf.apply(cmd, base)

	if got.XMax != 10 || got.Scale != "log" || got.XLabel != "t" {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.XMin != base.XMin || got.SampleSize != base.SampleSize || got.YLabel != base.YLabel {
		t.Errorf("unset flags changed the layout: %+v", got)
	}
}

func TestFunctionFlagsNames(t *testing.T) {
	tests := []struct {
		name       string
		flags      functionFlags
		args       []string
		wantVars   []string
		wantParams []string
	}{
		{"from signature", functionFlags{}, []string{"t", "csi", "b"}, []string{"t"}, []string{"csi"}},
		{"explicit", functionFlags{variable: "x", parameter: "a"}, []string{"t", "csi"}, []string{"x"}, []string{"a"}},
		{"one argument", functionFlags{}, []string{"t"}, []string{"t"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, params := tt.flags.names(tt.args)
			if len(vars) != len(tt.wantVars) || (len(vars) > 0 && vars[0] != tt.wantVars[0]) {
				t.Errorf("vars = %v, want %v", vars, tt.wantVars)
			}
			if len(params) != len(tt.wantParams) || (len(params) > 0 && params[0] != tt.wantParams[0]) {
				t.Errorf("params = %v, want %v", params, tt.wantParams)
			}
		})
	}
}

func TestFunctionFlagsProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.py")
	content := "def f(x, p):\n    return x\n\ndef g(t, k):\n    return t * k\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f := functionFlags{file: path}
	if _, _, err := f.provider(); err == nil {
		t.Error("expected an error for two functions without --name")
	}

	f.name = "g"
	src, args, err := f.provider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(source.File); !ok {
		t.Errorf("expected a file source, got %T", src)
	}
	if len(args) != 2 || args[0] != "t" || args[1] != "k" {
		t.Errorf("unexpected args %v", args)
	}
	text, err := src.Source()
	if err != nil {
		t.Fatal(err)
	}
	if text != "def g(t, k):\n    return t * k\n" {
		t.Errorf("unexpected source %q", text)
	}

	f.name = "missing"
	if _, _, err := f.provider(); err == nil {
		t.Error("expected an error for an unknown function")
	}
}
