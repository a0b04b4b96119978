package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"slidergraph/internal/adapter/translator"
	"slidergraph/internal/domain"
)

var (
	translateFn      functionFlags
	translateReport  bool
	translateKeyword string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Print the JavaScript body of a function",
	Long: `Translate one Python function into JavaScript statements. Only lines indented
exactly one level below the def are kept; assignments get a declaration keyword
and numpy calls are mapped to Math.

Examples:
  slidergraph translate -f model.py -n growth
  slidergraph translate -f model.py -n growth --keyword let --report
  cat body.py | slidergraph translate -f -`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateFn.register(translateCmd, false)
	translateCmd.Flags().BoolVar(&translateReport, "report", false, "print statement counts to stderr")
	translateCmd.Flags().StringVar(&translateKeyword, "keyword", "", "declaration keyword (\"-\" for none)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	src, _, err := translateFn.provider()
	if err != nil {
		return err
	}
	text, err := src.Source()
	if err != nil {
		return err
	}

	tcfg := translator.Config{
		SourceIndent: cfg.Translate.SourceIndent,
		TargetIndent: cfg.Translate.TargetIndent,
		Keyword:      cfg.Translate.Keyword,
	}
	if translateKeyword != "" {
		tcfg.Keyword = translateKeyword
	}

	out, report, err := translator.New(tcfg).Analyze(text)
	var warn *domain.MalformedInputWarning
	if errors.As(err, &warn) {
		GetLogger().Warn("nothing to translate", "origin", src.Origin(), "dropped", warn.Dropped)
	} else if err != nil {
		return err
	}

	fmt.Print(out)

	if translateReport {
		fmt.Fprintf(os.Stderr, "\nTranslation of %s:\n", src.Origin())
		fmt.Fprintf(os.Stderr, "  Declarations: %d\n", report.Declarations)
		fmt.Fprintf(os.Stderr, "  Returns:      %d\n", report.Returns)
		fmt.Fprintf(os.Stderr, "  Dropped:      %d\n", report.Dropped)
	}
	return nil
}
