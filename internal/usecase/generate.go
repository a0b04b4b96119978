package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"slidergraph/config"
	"slidergraph/internal/adapter/cache"
	"slidergraph/internal/adapter/fs"
	"slidergraph/internal/adapter/source"
	"slidergraph/internal/adapter/store"
	"slidergraph/internal/domain"
	"slidergraph/internal/port"
)

// GenerateUseCase builds descriptors for every function under a directory.
type GenerateUseCase struct {
	store      port.DescriptorStore
	walker     port.FileWalker
	translator port.Translator
	cfg        *config.Config
	logger     *slog.Logger
	now        func() time.Time
}

// NewGenerateUseCase creates a new generate use case.
func NewGenerateUseCase(
	st port.DescriptorStore,
	walker port.FileWalker,
	tr port.Translator,
	cfg *config.Config,
	logger *slog.Logger,
) *GenerateUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GenerateUseCase{
		store:      st,
		walker:     walker,
		translator: tr,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateResult contains the results of a generate run.
type GenerateResult struct {
	FilesScanned int
	Generated    int
	Skipped      int
	Removed      int
	Errors       []string
}

// ProgressFunc reports generation progress per file.
type ProgressFunc func(processed, total int, current string)

// Generate walks root and stores one descriptor per function. Functions
// whose source and descriptor configuration are unchanged are skipped, and
// descriptors of functions that disappeared are removed.
func (u *GenerateUseCase) Generate(root string, progress ProgressFunc) (*GenerateResult, error) {
	result := &GenerateResult{}

	layout, err := LayoutFromConfig(u.cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	configHash := store.ComputeConfigHash(u.cfg)

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	seenPaths := make(map[string]bool)
	for i, file := range files {
		seenPaths[file.Path] = true
		result.FilesScanned++

		if err := u.generateFile(file.Path, layout, configHash, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to process %s: %v", file.Path, err))
		}
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	// Drop descriptors for files that no longer exist
	paths, err := u.store.Paths()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored paths: %w", err)
	}
	for _, path := range paths {
		if seenPaths[path] {
			continue
		}
		keys, err := u.store.KeysByPath(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to list %s: %v", path, err))
			continue
		}
		u.removeKeys(keys, result)
	}

	return result, nil
}

func (u *GenerateUseCase) generateFile(path string, layout domain.GraphLayout, configHash string, result *GenerateResult) error {
	content, err := fs.ReadFile(path)
	if err != nil {
		return err
	}

	current := make(map[string]bool)
	for _, fn := range source.ListFunctions(content) {
		key := store.Key(path, fn.Name)
		current[key] = true

		generated, err := u.generateFunction(path, fn, layout, configHash)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		if generated {
			result.Generated++
		} else {
			result.Skipped++
		}
	}

	keys, err := u.store.KeysByPath(path)
	if err != nil {
		return err
	}
	var stale []string
	for _, k := range keys {
		if !current[k] {
			stale = append(stale, k)
		}
	}
	u.removeKeys(stale, result)
	return nil
}

func (u *GenerateUseCase) generateFunction(path string, fn source.Function, layout domain.GraphLayout, configHash string) (bool, error) {
	variable, parameter := u.cfg.Generate.Variable, u.cfg.Generate.Parameter
	args := fn.Args
	if variable == "" && len(args) > 0 {
		variable = args[0]
	}
	if parameter == "" && len(args) > 1 {
		parameter = args[1]
	}
	if variable == "" || parameter == "" {
		return false, domain.ErrNoVariables
	}

	src := source.File{Path: path, Function: fn.Name}
	text, err := src.Source()
	if err != nil {
		return false, err
	}
	key := store.Key(path, fn.Name)
	hash := cache.SourceHash(text)

	if existing, err := u.store.Get(key); err == nil && existing.SourceHash == hash && existing.ConfigHash == configHash {
		return false, nil
	}

	fd, err := NewFunctionDescriptor(source.Literal{Text: text, Name: src.Origin()}, []string{variable}, []string{parameter}, u.translator)
	if err != nil {
		return false, err
	}
	asm := NewAssembler(fd, layout, AssemblerOptions(u.cfg, u.logger)...)

	u.logger.Debug("generated descriptor", "key", key)
	return true, u.store.Put(domain.StoredDescriptor{
		Key:        key,
		Path:       path,
		Function:   fn.Name,
		SourceHash: hash,
		ConfigHash: configHash,
		Descriptor: asm.Assemble(),
		CreatedAt:  u.now().UTC(),
	})
}

func (u *GenerateUseCase) removeKeys(keys []string, result *GenerateResult) {
	for _, k := range keys {
		if err := u.store.Delete(k); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", k, err))
			continue
		}
		result.Removed++
	}
}
