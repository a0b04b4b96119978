package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"slidergraph/config"
	"slidergraph/internal/adapter/cache"
	"slidergraph/internal/adapter/store"
	"slidergraph/internal/domain"
	"slidergraph/internal/usecase"
)

var (
	assembleFn        functionFlags
	assembleLayout    layoutFlags
	assembleOut       string
	assembleSave      bool
	assembleRawLimits []float64
	assembleRawDomain []float64
	assembleBegin     string
	assembleEnd       string
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Build a SliderGraph descriptor for one function",
	Long: `Assemble the equation, limits, domain, axes and slider blocks of one function
into a SliderGraph descriptor. Layout flags override the configuration before
the log transform; --raw-limits and --raw-domain are written as given.

Examples:
  slidergraph assemble -f model.py -n growth --var t --param rate
  slidergraph assemble -f model.py -n decay --scale log --xmin 1 --xmax 1000 -o decay.js
  slidergraph assemble -f model.py -n growth --raw-limits 0,3,-1,4 --save`,
	RunE: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleFn.register(assembleCmd, true)
	assembleLayout.register(assembleCmd)
	assembleCmd.Flags().StringVarP(&assembleOut, "output", "o", "", "write the descriptor to a file instead of stdout")
	assembleCmd.Flags().BoolVar(&assembleSave, "save", false, "also store the descriptor in .slidergraph/descriptors.db")
	assembleCmd.Flags().Float64SliceVar(&assembleRawLimits, "raw-limits", nil, "xmin,xmax,ymin,ymax written verbatim")
	assembleCmd.Flags().Float64SliceVar(&assembleRawDomain, "raw-domain", nil, "min,max written verbatim")
	assembleCmd.Flags().StringVar(&assembleBegin, "begin", "", "begin marker")
	assembleCmd.Flags().StringVar(&assembleEnd, "end", "", "end marker")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	asm, err := assembler(cmd, &assembleFn, &assembleLayout)
	if err != nil {
		return err
	}

	if len(assembleRawLimits) > 0 {
		if len(assembleRawLimits) != 4 {
			return fmt.Errorf("--raw-limits needs 4 values, got %d", len(assembleRawLimits))
		}
		l := assembleRawLimits
		asm.SetLimits(usecase.LimitsOverride{
			XMin: usecase.Float(l[0]),
			XMax: usecase.Float(l[1]),
			YMin: usecase.Float(l[2]),
			YMax: usecase.Float(l[3]),
		})
	}
	if len(assembleRawDomain) > 0 {
		if len(assembleRawDomain) != 2 {
			return fmt.Errorf("--raw-domain needs 2 values, got %d", len(assembleRawDomain))
		}
		asm.SetDomain(usecase.DomainOverride{
			XMin: usecase.Float(assembleRawDomain[0]),
			XMax: usecase.Float(assembleRawDomain[1]),
		})
	}
	if assembleBegin != "" || assembleEnd != "" {
		asm.SetMarkers(assembleBegin, assembleEnd)
	}

	descriptor := asm.Assemble()

	if assembleOut != "" {
		if err := os.WriteFile(assembleOut, []byte(descriptor+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", assembleOut, err)
		}
		fmt.Printf("Descriptor written to %s\n", assembleOut)
	} else {
		fmt.Println(descriptor)
	}

	if assembleSave {
		key, err := saveDescriptor(GetConfig(), asm, descriptor)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored as %s\n", key)
	}
	return nil
}

func saveDescriptor(cfg *config.Config, asm *usecase.Assembler, descriptor string) (string, error) {
	root := GetRootDir()
	if err := config.EnsureStoreDir(root); err != nil {
		return "", fmt.Errorf("failed to create .slidergraph directory: %w", err)
	}
	st, err := store.NewBoltStore(config.StoreDBPath(root))
	if err != nil {
		return "", fmt.Errorf("failed to open descriptor store: %w", err)
	}
	defer st.Close()

	fn := asm.Function()
	path := assembleFn.file
	if path != "-" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	name := fn.Name()
	if name == "" {
		name = "main"
	}

	key := store.Key(path, name)
	err = st.Put(domain.StoredDescriptor{
		Key:        key,
		Path:       path,
		Function:   name,
		SourceHash: cache.SourceHash(fn.Source()),
		ConfigHash: store.ComputeConfigHash(cfg),
		Descriptor: descriptor,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store descriptor: %w", err)
	}
	return key, nil
}
