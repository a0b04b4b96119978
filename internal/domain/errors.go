package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAcquisition   = errors.New("source acquisition failed")
	ErrInvalidDomain = errors.New("invalid logarithmic domain")
	ErrInvalidLayout = errors.New("invalid graph layout")
	ErrNoVariables   = errors.New("function needs at least one variable and one parameter")
	ErrMalformed     = errors.New("no translatable statements")
)

// AcquisitionError reports that the source text of a function could not be obtained.
type AcquisitionError struct {
	Origin string
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("acquire source from %s", e.Origin)
	}
	return fmt.Sprintf("acquire source from %s: %v", e.Origin, e.Err)
}

func (e *AcquisitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAcquisition}
	}
	return []error{ErrAcquisition, e.Err}
}

// InvalidDomainError is raised before a log transform when a bound is not strictly positive.
type InvalidDomainError struct {
	Field string
	Value float64
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("log scale requires positive %s, got %g", e.Field, e.Value)
}

func (e *InvalidDomainError) Unwrap() error { return ErrInvalidDomain }

// MalformedInputWarning is non-fatal: the source had no recognizable body
// statement and translated to an empty string.
type MalformedInputWarning struct {
	Dropped int
}

func (w *MalformedInputWarning) Error() string {
	return fmt.Sprintf("no indented statement or return line found (%d lines dropped)", w.Dropped)
}

func (w *MalformedInputWarning) Unwrap() error { return ErrMalformed }
