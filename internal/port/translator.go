package port

// Translator converts a Python function body into JavaScript statements.
type Translator interface {
	Translate(source string) string
}
