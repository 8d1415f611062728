package rules

import "fmt"

// ParseError wraps a syntactically unreadable rule file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse rules %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError reports an invalid value at a specific field path, e.g.
// "sites[2].then.remove[0]".
type FieldError struct {
	FieldPath string
	Message   string
}

func (e *FieldError) Error() string {
	return e.FieldPath + ": " + e.Message
}

func fieldErrorf(path, format string, args ...any) *FieldError {
	return &FieldError{FieldPath: path, Message: fmt.Sprintf(format, args...)}
}
