package usecase

import (
	"errors"
	"fmt"

	"slidergraph/internal/adapter/source"
	"slidergraph/internal/domain"
	"slidergraph/internal/port"
)

// FunctionDescriptor is a translatable function with its variable and
// parameter names. Only the cached translation changes after construction.
type FunctionDescriptor struct {
	name       string
	origin     string
	source     string
	variables  []string
	parameters []string

	translator   port.Translator
	translated   string
	cached       bool
	translations int
}

// NewFunctionDescriptor acquires the source text from src. An acquisition
// failure is returned as a *domain.AcquisitionError.
func NewFunctionDescriptor(src port.SourceProvider, variables, parameters []string, tr port.Translator) (*FunctionDescriptor, error) {
	if len(variables) == 0 || len(parameters) == 0 {
		return nil, domain.ErrNoVariables
	}
	if tr == nil {
		return nil, fmt.Errorf("function descriptor needs a translator")
	}

	text, err := src.Source()
	if err != nil {
		var acq *domain.AcquisitionError
		if !errors.As(err, &acq) {
			err = &domain.AcquisitionError{Origin: src.Origin(), Err: err}
		}
		return nil, err
	}

	fd := &FunctionDescriptor{
		origin:     src.Origin(),
		source:     text,
		variables:  append([]string(nil), variables...),
		parameters: append([]string(nil), parameters...),
		translator: tr,
	}
	if fns := source.ListFunctions(text); len(fns) > 0 {
		fd.name = fns[0].Name
	}
	return fd, nil
}

// Name is the function name from the def line, or "" for a bare body.
func (f *FunctionDescriptor) Name() string { return f.name }

func (f *FunctionDescriptor) Origin() string { return f.origin }

func (f *FunctionDescriptor) Source() string { return f.source }

func (f *FunctionDescriptor) Variables() []string {
	return append([]string(nil), f.variables...)
}

func (f *FunctionDescriptor) Parameters() []string {
	return append([]string(nil), f.parameters...)
}

// Variable is the plotted variable.
func (f *FunctionDescriptor) Variable() string { return f.variables[0] }

// Parameter is the slider-controlled parameter.
func (f *FunctionDescriptor) Parameter() string { return f.parameters[0] }

// TranslatedText translates the source on first use and returns the cached
// text afterwards.
func (f *FunctionDescriptor) TranslatedText() string {
	if !f.cached {
		f.translated = f.translator.Translate(f.source)
		f.cached = true
		f.translations++
	}
	return f.translated
}

// SetTranslator swaps the translator and drops the cached translation.
func (f *FunctionDescriptor) SetTranslator(tr port.Translator) {
	f.translator = tr
	f.translated = ""
	f.cached = false
}

// Translations counts how often the translator actually ran.
func (f *FunctionDescriptor) Translations() int { return f.translations }
