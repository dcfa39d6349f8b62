// Package codec converts single column values between their wire form and
// native Go integers.
//
// A value arrives either in the text protocol (ASCII decimal) or the binary
// protocol (little-endian two's complement). Callers check Compatible before
// decoding; Decode itself never panics regardless of the bytes it is given.
// Nothing in this package keeps state between calls, so every function is
// safe for concurrent use.
package codec

import (
	"fmt"
	"unicode/utf8"

	"goDBwire/internal/sql"
)

// Format is the protocol representation a value was sent in.
type Format uint8

const (
	FormatText Format = iota
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ValueRef is a view over the raw bytes of one column value.
//
// The bytes belong to the row buffer that produced them. Functions in this
// package read them only for the duration of a call and never keep them.
type ValueRef struct {
	buf    []byte
	format Format
	typ    sql.TypeInfo
}

// NewValueRef wraps buf, sent in the given format for a column of type ti.
func NewValueRef(buf []byte, format Format, ti sql.TypeInfo) ValueRef {
	return ValueRef{buf: buf, format: format, typ: ti}
}

func (v ValueRef) Format() Format         { return v.format }
func (v ValueRef) Bytes() []byte          { return v.buf }
func (v ValueRef) TypeInfo() sql.TypeInfo { return v.typ }

// AsString returns the value as a string. It fails if the bytes are not
// valid UTF-8.
func (v ValueRef) AsString() (string, error) {
	if !utf8.Valid(v.buf) {
		return "", fmt.Errorf("codec: value is not valid UTF-8")
	}
	return string(v.buf), nil
}
