package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"slidergraph/config"
	"slidergraph/internal/adapter/store"
)

var (
	showJSON   bool
	showDelete bool
)

var showCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "List or print stored descriptors",
	Long: `Without a key, list the descriptors stored by generate and assemble --save.
With a key (path#function), print that descriptor.

Examples:
  slidergraph show
  slidergraph show /src/model.py#growth
  slidergraph show /src/model.py#growth --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	showCmd.Flags().BoolVar(&showDelete, "delete", false, "delete the descriptor instead of printing it")
}

func runShow(cmd *cobra.Command, args []string) error {
	dbPath := config.StoreDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no descriptors found. Run 'slidergraph generate' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open descriptor store: %w", err)
	}
	defer st.Close()

	if len(args) == 1 {
		key := args[0]
		if showDelete {
			if err := st.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			fmt.Printf("Deleted %s\n", key)
			return nil
		}

		d, err := st.Get(key)
		if err != nil {
			return fmt.Errorf("descriptor %s: %w", key, err)
		}
		if showJSON {
			output, _ := json.MarshalIndent(d, "", "  ")
			fmt.Println(string(output))
			return nil
		}
		fmt.Println(d.Descriptor)
		return nil
	}

	all, err := st.List()
	if err != nil {
		return fmt.Errorf("failed to list descriptors: %w", err)
	}
	if showJSON {
		output, _ := json.MarshalIndent(all, "", "  ")
		fmt.Println(string(output))
		return nil
	}
	if len(all) == 0 {
		fmt.Println("No descriptors stored.")
		return nil
	}
	fmt.Printf("%d descriptors in %s\n\n", len(all), dbPath)
	for _, d := range all {
		fmt.Printf("  %s  (%s)\n", d.Key, d.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
