package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"slidergraph/config"
	"slidergraph/internal/adapter/fs"
	"slidergraph/internal/adapter/store"
	"slidergraph/internal/usecase"
)

var generateRebuild bool

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Build descriptors for every function under a directory",
	Long: `Walk the directory for Python files and assemble a descriptor for every
function found. Descriptors are stored in .slidergraph/descriptors.db within the
target directory; unchanged functions are skipped on later runs.

Examples:
  slidergraph generate .                 # Current directory
  slidergraph generate ./models --rebuild`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateRebuild, "rebuild", false, "drop stored descriptors first")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	if err := config.EnsureStoreDir(path); err != nil {
		return fmt.Errorf("failed to create .slidergraph directory: %w", err)
	}

	dbPath := config.StoreDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open descriptor store: %w", err)
	}
	defer st.Close()

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}

	switch {
	case generateRebuild || migrationResult.NeedsRebuild:
		if migrationResult.NeedsRebuild {
			fmt.Printf("Rebuild required: %s\n", migrationResult.Reason)
		}
		fmt.Println("Clearing stored descriptors...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
	case migrationResult.NeedsMigration:
		fmt.Printf("Running schema migration: %s\n", migrationResult.Reason)
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	tr, err := usecase.NewTranslator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}
	walker := fs.NewWalker(cfg.Generate.Includes, cfg.Generate.Excludes)
	generateUC := usecase.NewGenerateUseCase(st, walker, tr, cfg, GetLogger())

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	var initialized bool

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Generating[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Generating[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	result, err := generateUC.Generate(path, progressCallback)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	hits, misses := tr.Stats()

	fmt.Printf("\nGeneration complete:\n")
	fmt.Printf("  Files scanned:  %d\n", result.FilesScanned)
	fmt.Printf("  Generated:      %d\n", result.Generated)
	fmt.Printf("  Skipped:        %d (unchanged)\n", result.Skipped)
	fmt.Printf("  Removed:        %d (stale)\n", result.Removed)
	fmt.Printf("  Cache:          %d hits, %d misses\n", hits, misses)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nDescriptors stored at: %s\n", dbPath)
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
