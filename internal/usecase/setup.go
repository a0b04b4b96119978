package usecase

import (
	"log/slog"

	"slidergraph/config"
	"slidergraph/internal/adapter/cache"
	"slidergraph/internal/adapter/translator"
	"slidergraph/internal/domain"
)

// LayoutFromConfig resolves a layout config, applying the log transform.
func LayoutFromConfig(c config.LayoutConfig) (domain.GraphLayout, error) {
	scale, err := domain.ParseScale(c.Scale)
	if err != nil {
		return domain.GraphLayout{}, err
	}
	return domain.NewGraphLayout(domain.LayoutOptions{
		XMin:       c.XMin,
		XMax:       c.XMax,
		YMin:       c.YMin,
		YMax:       c.YMax,
		VMin:       c.VMin,
		VMax:       c.VMax,
		XLabel:     c.XLabel,
		YLabel:     c.YLabel,
		StartPoint: c.StartPoint,
		SampleSize: c.SampleSize,
		Scale:      scale,
	})
}

// NewTranslator builds the configured translator behind an LRU cache.
func NewTranslator(cfg *config.Config) (*cache.CachedTranslator, error) {
	tr := translator.New(translator.Config{
		SourceIndent: cfg.Translate.SourceIndent,
		TargetIndent: cfg.Translate.TargetIndent,
		Keyword:      cfg.Translate.Keyword,
	})
	return cache.NewCachedTranslator(tr, cfg.Cache.Size)
}

// AssemblerOptions maps the output config onto assembler options.
func AssemblerOptions(cfg *config.Config, logger *slog.Logger) []Option {
	return []Option{
		WithMarkers(cfg.Output.BeginMarker, cfg.Output.EndMarker),
		WithBlockIndent(cfg.Output.BlockIndent),
		WithPrecision(cfg.Output.Precision),
		WithSourceIndent(cfg.Translate.SourceIndent),
		WithLogger(logger),
	}
}
