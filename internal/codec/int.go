package codec

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"unsafe"

	"goDBwire/internal/sql"
)

// Int is the set of native integer types the codec decodes into and
// encodes from.
type Int interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// IsNull reports whether an encoder wrote a value or left a NULL.
type IsNull bool

const (
	NotNull IsNull = false
	Null    IsNull = true
)

// Compatible reports whether a column of type ti may be decoded into a
// signed native integer. Any integer column type is accepted as long as it
// is not UNSIGNED; the width of the column is not compared with the width
// of the target, narrowing is checked by Decode instead.
func Compatible(ti sql.TypeInfo) bool {
	return ti.Type.IsInteger() && !ti.Flags.Contains(sql.FlagUnsigned)
}

// CompatibleWith is Compatible for a specific target type T.
func CompatibleWith[T Int](ti sql.TypeInfo) bool {
	return Compatible(ti)
}

// TypeInfoOf returns the declared type used when T is sent as a parameter.
func TypeInfoOf[T Int]() sql.TypeInfo {
	switch byteWidth[T]() {
	case 1:
		return sql.BinaryTypeInfo(sql.TypeTiny)
	case 2:
		return sql.BinaryTypeInfo(sql.TypeShort)
	case 4:
		return sql.BinaryTypeInfo(sql.TypeLong)
	default:
		return sql.BinaryTypeInfo(sql.TypeLongLong)
	}
}

// Decode decodes v into T. The value is first read into an int64 and then
// narrowed; values that do not fit in T yield a *RangeOverflowError.
func Decode[T Int](v ValueRef) (T, error) {
	n, err := DecodeInt64(v)
	if err != nil {
		return 0, err
	}
	return narrow[T](n)
}

// DecodeInt64 decodes v into the 64-bit intermediate used by Decode.
func DecodeInt64(v ValueRef) (int64, error) {
	switch v.Format() {
	case FormatText:
		return parseText(v)
	case FormatBinary:
		return readBinary(v.Bytes())
	}
	return 0, fmt.Errorf("codec: unknown value format %v", v.Format())
}

// Encode appends the little-endian two's-complement bytes of v to buf.
// Exactly as many bytes as T is wide are written.
func Encode[T Int](buf []byte, v T) ([]byte, IsNull) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(v)))
	return append(buf, b[:byteWidth[T]()]...), NotNull
}

// parseText accepts an optional '-' followed by one or more ASCII digits.
// strconv.ParseInt alone would also let a leading '+' through.
func parseText(v ValueRef) (int64, error) {
	s, err := v.AsString()
	if err != nil {
		return 0, &LexicalParseError{Text: string(v.Bytes()), Err: err}
	}
	if !isDecimal(s) {
		return 0, &LexicalParseError{Text: s, Err: strconv.ErrSyntax}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &LexicalParseError{Text: s, Err: err}
	}
	return n, nil
}

func isDecimal(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// readBinary interprets buf as a little-endian two's-complement integer of
// len(buf) bytes and sign-extends it from the top byte present.
func readBinary(buf []byte) (int64, error) {
	n := len(buf)
	if n == 0 {
		return 0, &EmptyBufferError{}
	}
	if n > maxBinaryIntLen {
		return 0, &OversizedBufferError{Len: n}
	}

	var b [8]byte
	copy(b[:], buf)
	shift := uint(64 - 8*n)
	return int64(binary.LittleEndian.Uint64(b[:])<<shift) >> shift, nil
}

func narrow[T Int](v int64) (T, error) {
	n := T(v)
	if int64(n) != v {
		return 0, &RangeOverflowError{Value: v, Width: byteWidth[T]() * 8}
	}
	return n, nil
}

func byteWidth[T Int]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
