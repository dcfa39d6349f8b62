package codec

import (
	"fmt"
	"strconv"

	"goDBwire/internal/sql"
)

// maxBinaryIntLen is the widest integer the binary protocol sends.
const maxBinaryIntLen = 8

// EmptyBufferError is returned when a binary integer value has no bytes.
type EmptyBufferError struct{}

func (*EmptyBufferError) Error() string {
	return "codec: empty buffer for binary integer value"
}

// OversizedBufferError is returned when a binary integer value is wider
// than 8 bytes.
type OversizedBufferError struct {
	Len int
}

func (e *OversizedBufferError) Error() string {
	return fmt.Sprintf("codec: expected no more than %d bytes for integer value, got %d", maxBinaryIntLen, e.Len)
}

// LexicalParseError is returned when a text value is not a decimal integer
// literal that fits in 64 bits.
type LexicalParseError struct {
	Text string
	Err  error
}

func (e *LexicalParseError) Error() string {
	return fmt.Sprintf("codec: invalid integer literal %s: %v", strconv.Quote(e.Text), e.Err)
}

func (e *LexicalParseError) Unwrap() error { return e.Err }

// RangeOverflowError is returned when a decoded value does not fit in the
// requested native type. Width is in bits.
type RangeOverflowError struct {
	Value int64
	Width int
}

func (e *RangeOverflowError) Error() string {
	return fmt.Sprintf("codec: value %d out of range for int%d", e.Value, e.Width)
}

// TypeMismatchError is returned by callers when Compatible rejects the
// pairing of a column type and a native target type.
type TypeMismatchError struct {
	Type   sql.TypeInfo
	Target string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("codec: mismatched types; Go type %s is not compatible with SQL type %s", e.Target, e.Type)
}

// MismatchError builds the TypeMismatchError for target type T.
func MismatchError[T Int](ti sql.TypeInfo) *TypeMismatchError {
	var zero T
	return &TypeMismatchError{Type: ti, Target: fmt.Sprintf("%T", zero)}
}
