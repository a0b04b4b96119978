//go:build js && wasm

package main

import (
	"encoding/json"
	"math"
	"syscall/js"
	"time"

	"slidergraph/config"
	"slidergraph/internal/adapter/cache"
	"slidergraph/internal/adapter/memstore"
	"slidergraph/internal/adapter/source"
	"slidergraph/internal/domain"
	"slidergraph/internal/usecase"
)

// descriptors are kept under this path, keyed by function name.
const browserPath = "browser"

var (
	cfg   *config.Config
	tr    *cache.CachedTranslator
	store *memstore.MemoryStore
)

func init() {
	cfg = config.DefaultConfig()
	tr, _ = usecase.NewTranslator(cfg)
	store = memstore.NewMemoryStore()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("slidergraphTranslate", js.FuncOf(translate))
	js.Global().Set("slidergraphAssemble", js.FuncOf(assemble))
	js.Global().Set("slidergraphSamples", js.FuncOf(samples))
	js.Global().Set("slidergraphGet", js.FuncOf(getDescriptor))
	js.Global().Set("slidergraphClear", js.FuncOf(clearCache))
	js.Global().Set("slidergraphStats", js.FuncOf(getStats))

	<-c
}

// layoutOptions are the JSON options accepted by assemble and samples.
// Missing fields keep the defaults.
type layoutOptions struct {
	Variable  string               `json:"variable"`
	Parameter string               `json:"parameter"`
	Layout    *config.LayoutConfig `json:"layout"`
}

func translate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: slidergraphTranslate(source)")
	}
	return makeResult(map[string]interface{}{
		"body": tr.Translate(args[0].String()),
	})
}

func assemble(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: slidergraphAssemble(source, [optionsJSON])")
	}
	asm, err := newAssembler(args)
	if err != nil {
		return makeError(err.Error())
	}

	fn := asm.Function()
	name := fn.Name()
	if name == "" {
		name = "main"
	}
	descriptor := asm.Assemble()
	err = store.Put(domain.StoredDescriptor{
		Key:        name,
		Path:       browserPath,
		Function:   name,
		SourceHash: cache.SourceHash(fn.Source()),
		Descriptor: descriptor,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return makeError("store failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"function":   name,
		"descriptor": descriptor,
	})
}

func getDescriptor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: slidergraphGet(function)")
	}
	d, err := store.Get(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"function":   d.Function,
		"descriptor": d.Descriptor,
	})
}

func samples(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: slidergraphSamples(source, param, [optionsJSON])")
	}
	param := args[1].Float()
	rest := []js.Value{args[0]}
	if len(args) > 2 {
		rest = append(rest, args[2])
	}
	asm, err := newAssembler(rest)
	if err != nil {
		return makeError(err.Error())
	}
	frame, err := asm.Frame(param, usecase.ModeDisplay)
	if err != nil {
		return makeError("sampling failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"x":     frame.Samples.X,
		"y":     finite(frame.Samples.Y),
		"param": frame.Samples.Param,
	})
}

func newAssembler(args []js.Value) (*usecase.Assembler, error) {
	text := args[0].String()
	opts := layoutOptions{}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[1].String()), &opts); err != nil {
			return nil, err
		}
	}

	layoutCfg := cfg.Layout
	if opts.Layout != nil {
		layoutCfg = *opts.Layout
	}
	layout, err := usecase.LayoutFromConfig(layoutCfg)
	if err != nil {
		return nil, err
	}

	variable, parameter := opts.Variable, opts.Parameter
	if fns := source.ListFunctions(text); len(fns) > 0 {
		if variable == "" && len(fns[0].Args) > 0 {
			variable = fns[0].Args[0]
		}
		if parameter == "" && len(fns[0].Args) > 1 {
			parameter = fns[0].Args[1]
		}
	}
	var vars, params []string
	if variable != "" {
		vars = []string{variable}
	}
	if parameter != "" {
		params = []string{parameter}
	}

	fd, err := usecase.NewFunctionDescriptor(source.Literal{Text: text}, vars, params, tr)
	if err != nil {
		return nil, err
	}
	return usecase.NewAssembler(fd, layout, usecase.AssemblerOptions(cfg, nil)...), nil
}

func clearCache(this js.Value, args []js.Value) interface{} {
	tr.Purge()
	store.Clear()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	hits, misses := tr.Stats()
	keys, _ := store.KeysByPath(browserPath)
	return makeResult(map[string]interface{}{
		"functions": keys,
		"cached":    tr.Len(),
		"hits":      hits,
		"misses":    misses,
	})
}

// finite maps non-finite samples to nil, which JSON encodes as null.
func finite(ys []float64) []interface{} {
	out := make([]interface{}, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			out[i] = y
		}
	}
	return out
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
