// Package wire splits result-row payloads into per-column value references
// and builds outbound parameter blocks, handing individual values to the
// codec package.
//
// It works on one already-framed row at a time. Reading packets off a
// connection is the caller's job.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"goDBwire/internal/codec"
	"goDBwire/internal/sql"
)

// binaryRowHeader is the first byte of every binary protocol row.
const binaryRowHeader = 0x00

// binaryRowBitmapOffset is the number of reserved bits at the start of a
// binary row's NULL bitmap.
const binaryRowBitmapOffset = 2

// ErrNull is returned when a NULL column is scanned into a non-nullable
// destination.
var ErrNull = errors.New("wire: unexpected NULL value")

// Row is one result row split into per-column values. The values alias
// the payload the row was parsed from.
type Row struct {
	columns []sql.Column
	values  []codec.ValueRef
	nulls   []bool
}

// Len returns the number of columns in the row.
func (r Row) Len() int { return len(r.columns) }

func (r Row) Columns() []sql.Column { return r.columns }

// Get returns the value of column i. ok is false when the column is NULL
// or i is out of range.
func (r Row) Get(i int) (v codec.ValueRef, ok bool) {
	if i < 0 || i >= len(r.values) || r.nulls[i] {
		return codec.ValueRef{}, false
	}
	return r.values[i], true
}

// IsNull reports whether column i is NULL.
func (r Row) IsNull(i int) bool {
	return i >= 0 && i < len(r.nulls) && r.nulls[i]
}

// ParseBinaryRow splits a binary protocol row:
//
//	offset  size              field
//	0       1                 header 0x00
//	1       (n+7+2)/8         NULL bitmap, bit i+2 set when column i is NULL
//	...     per column        little-endian value, width from the column type
//
// Only fixed-width integer columns are supported.
func ParseBinaryRow(buf []byte, cols []sql.Column) (Row, error) {
	r := reader{buf: buf}

	header, err := r.readByte()
	if err != nil {
		return Row{}, fmt.Errorf("wire: empty binary row")
	}
	if header != binaryRowHeader {
		return Row{}, fmt.Errorf("wire: unexpected binary row header 0x%02x", header)
	}

	bitmap, err := r.readN((len(cols) + 7 + binaryRowBitmapOffset) / 8)
	if err != nil {
		return Row{}, fmt.Errorf("wire: truncated NULL bitmap: %w", err)
	}

	row := newRow(cols)
	for i, col := range cols {
		bit := i + binaryRowBitmapOffset
		if bitmap[bit/8]&(1<<(bit%8)) != 0 {
			row.nulls[i] = true
			continue
		}

		width := col.Type.Type.BinaryWidth()
		if width == 0 {
			return Row{}, fmt.Errorf("wire: column %q: unsupported type %v", col.Name, col.Type.Type)
		}
		b, err := r.readN(width)
		if err != nil {
			return Row{}, fmt.Errorf("wire: truncated row at column %q: %w", col.Name, err)
		}
		row.values[i] = codec.NewValueRef(b, codec.FormatBinary, col.Type)
	}

	if n := r.remaining(); n != 0 {
		return Row{}, fmt.Errorf("wire: %d trailing bytes after binary row", n)
	}
	return row, nil
}

// ParseTextRow splits a text protocol row: one length-encoded string per
// column, 0xFB for NULL.
func ParseTextRow(buf []byte, cols []sql.Column) (Row, error) {
	r := reader{buf: buf}

	row := newRow(cols)
	for i, col := range cols {
		s, isNull, err := r.readLenEncString()
		if err != nil {
			return Row{}, fmt.Errorf("wire: truncated row at column %q: %w", col.Name, err)
		}
		if isNull {
			row.nulls[i] = true
			continue
		}
		row.values[i] = codec.NewValueRef(s, codec.FormatText, col.Type)
	}

	if n := r.remaining(); n != 0 {
		return Row{}, fmt.Errorf("wire: %d trailing bytes after text row", n)
	}
	return row, nil
}

func newRow(cols []sql.Column) Row {
	return Row{
		columns: cols,
		values:  make([]codec.ValueRef, len(cols)),
		nulls:   make([]bool, len(cols)),
	}
}

// ScanInt decodes column i into T. The column type is checked with
// codec.CompatibleWith before any bytes are read; a rejected pairing
// yields a *codec.TypeMismatchError and a NULL column yields ErrNull.
func ScanInt[T codec.Int](row Row, i int) (T, error) {
	v, valid, err := ScanNullableInt[T](row, i)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, fmt.Errorf("wire: column %q: %w", row.columns[i].Name, ErrNull)
	}
	return v, nil
}

// ScanNullableInt is ScanInt for nullable columns: valid is false when the
// column is NULL.
func ScanNullableInt[T codec.Int](row Row, i int) (v T, valid bool, err error) {
	if i < 0 || i >= row.Len() {
		return 0, false, fmt.Errorf("wire: column index %d out of range [0, %d)", i, row.Len())
	}

	col := row.columns[i]
	if !codec.CompatibleWith[T](col.Type) {
		return 0, false, fmt.Errorf("wire: column %q: %w", col.Name, codec.MismatchError[T](col.Type))
	}
	if row.nulls[i] {
		return 0, false, nil
	}

	v, err = codec.Decode[T](row.values[i])
	if err != nil {
		return 0, false, fmt.Errorf("wire: column %q: %w", col.Name, err)
	}
	return v, true, nil
}

// EncodeTextRow builds a text protocol row. A nil entry is sent as NULL.
func EncodeTextRow(values [][]byte) []byte {
	var buf []byte
	for _, v := range values {
		buf = appendLenEncString(buf, v)
	}
	return buf
}

// EncodeBinaryRow builds a binary protocol row for integer columns, as a
// server would send it. A nil entry is sent as NULL. Values must fit the
// column's wire width, either as signed or as unsigned.
func EncodeBinaryRow(cols []sql.Column, values []*int64) ([]byte, error) {
	if len(values) != len(cols) {
		return nil, fmt.Errorf("wire: %d values for %d columns", len(values), len(cols))
	}

	bitmap := make([]byte, (len(cols)+7+binaryRowBitmapOffset)/8)
	var body []byte
	for i, col := range cols {
		if values[i] == nil {
			bit := i + binaryRowBitmapOffset
			bitmap[bit/8] |= 1 << (bit % 8)
			continue
		}

		width := col.Type.Type.BinaryWidth()
		if width == 0 {
			return nil, fmt.Errorf("wire: column %q: unsupported type %v", col.Name, col.Type.Type)
		}
		v := *values[i]
		if width < 8 {
			bits := uint(width * 8)
			if v < -(1<<(bits-1)) || v > (1<<bits)-1 {
				return nil, fmt.Errorf("wire: column %q: value %d does not fit in %d bytes", col.Name, v, width)
			}
		}

		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(v))
		body = append(body, tmp[:width]...)
	}

	buf := make([]byte, 0, 1+len(bitmap)+len(body))
	buf = append(buf, binaryRowHeader)
	buf = append(buf, bitmap...)
	return append(buf, body...), nil
}
