// Package cerrors classifies compiler failures into four kinds, so
// callers can test which stage failed with errors.Is instead of
// matching message text.
package cerrors

import "fmt"

// Sentinel errors, one per failure kind. Wrap them with Wrap so a
// caller can do errors.Is(err, cerrors.Syntax).
var (
	// Lexical marks an unrecognised character or malformed literal.
	Lexical = fmt.Errorf("lexical error")

	// Syntax marks a token stream that doesn't match the grammar.
	Syntax = fmt.Errorf("syntax error")

	// Semantic marks an undefined variable, a bad assignment target,
	// or a duplicate parameter name.
	Semantic = fmt.Errorf("semantic error")

	// Internal marks an AST shape the code generator didn't expect.
	Internal = fmt.Errorf("internal error")
)

// Wrap produces an error that reports msg, is tagged with kind via
// errors.Is, and formats as "<kind>: <msg>".
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
