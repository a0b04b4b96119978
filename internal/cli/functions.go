package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"slidergraph/internal/adapter/fs"
	"slidergraph/internal/adapter/source"
)

var (
	functionsFile string
	functionsJSON bool
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the functions in a Python file",
	Long: `List every def in a Python file with its line and arguments. The first two
arguments are the default variable and parameter.

Examples:
  slidergraph functions -f model.py
  slidergraph functions -f model.py --json`,
	RunE: runFunctions,
}

func init() {
	rootCmd.AddCommand(functionsCmd)
	functionsCmd.Flags().StringVarP(&functionsFile, "file", "f", "", "Python file (required)")
	functionsCmd.Flags().BoolVar(&functionsJSON, "json", false, "output as JSON")
	functionsCmd.MarkFlagRequired("file")
}

func runFunctions(cmd *cobra.Command, args []string) error {
	content, err := fs.ReadFile(functionsFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", functionsFile, err)
	}
	fns := source.ListFunctions(content)

	if functionsJSON {
		output, _ := json.MarshalIndent(fns, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(fns) == 0 {
		fmt.Println("No functions found.")
		return nil
	}
	for _, fn := range fns {
		marker := ""
		if fn.Nested {
			marker = " (nested)"
		}
		fmt.Printf("%4d  %s(%s)%s\n", fn.Line, fn.Name, strings.Join(fn.Args, ", "), marker)
	}
	return nil
}
