package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"slidergraph/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "slidergraph",
	Short: "SliderGraph - Turn numeric Python functions into interactive graph descriptors",
	Long: `slidergraph translates small numeric Python functions (assignments, a return
and numpy calls) into JavaScript and wraps them in a SliderGraph descriptor
with limits, slider domain, axis labels and slider defaults.

Example usage:
  slidergraph translate -f model.py -n growth        # Print the JavaScript body
  slidergraph assemble -f model.py -n growth -o g.js # Write one descriptor
  slidergraph generate .                              # Build descriptors for a tree
  slidergraph preview -f model.py -n growth -i       # Slide the parameter in a terminal`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(rootDir); err != nil {
			return fmt.Errorf("failed to apply environment: %w", err)
		}

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./slidergraph.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() *slog.Logger {
	return logger
}
