package port

// SourceProvider yields the literal source text of one function.
type SourceProvider interface {
	// Source returns the function text, signature line included.
	Source() (string, error)

	// Origin describes where the text comes from, for error messages.
	Origin() string
}
