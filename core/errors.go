package core

import "fmt"

// SyntaxError reports an unexpected byte or keyword in the input. Pos is
// the byte offset at which the problem was detected.
type SyntaxError struct {
	Pos int64
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func syntaxErrf(pos int64, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// DecompressionError reports that a compressed stream payload could not
// be decoded. It wraps the underlying filter error.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("decompression failed: %v", e.Err)
}

func (e *DecompressionError) Unwrap() error { return e.Err }
