package ldl

import "fmt"

// SyntaxError is returned for any malformed layout. Offset is the byte offset
// of the offending token in the original input.
type SyntaxError struct {
	Offset int
	Detail string
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Syntax error at %d: %s", e.Offset, e.Detail)
}

func errorAt(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	if tok.Kind == TokenWord {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.String()
}
