package wire

import (
	"encoding/binary"
	"fmt"
)

const (
	lenEncNull  = 0xFB
	lenEncInt16 = 0xFC
	lenEncInt24 = 0xFD
	lenEncInt64 = 0xFE
)

// reader walks a row payload. Every read is bounds-checked so that a
// short or corrupt payload yields an error instead of a panic.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) readByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, fmt.Errorf("wire: unexpected end of buffer")
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// readN returns the next n bytes without copying them.
func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("wire: unexpected end of buffer: need %d bytes, have %d", n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// readLenEncInt reads a length-encoded integer. isNull is set for the
// 0xFB marker used by text rows.
func (r *reader) readLenEncInt() (v uint64, isNull bool, err error) {
	first, err := r.readByte()
	if err != nil {
		return 0, false, err
	}

	var width int
	switch {
	case first < lenEncNull:
		return uint64(first), false, nil
	case first == lenEncNull:
		return 0, true, nil
	case first == lenEncInt16:
		width = 2
	case first == lenEncInt24:
		width = 3
	case first == lenEncInt64:
		width = 8
	default:
		return 0, false, fmt.Errorf("wire: invalid length-encoded integer prefix 0x%02x", first)
	}

	b, err := r.readN(width)
	if err != nil {
		return 0, false, err
	}
	var tmp [8]byte
	copy(tmp[:], b)
	return binary.LittleEndian.Uint64(tmp[:]), false, nil
}

func (r *reader) readLenEncString() (s []byte, isNull bool, err error) {
	n, isNull, err := r.readLenEncInt()
	if err != nil || isNull {
		return nil, isNull, err
	}
	if n > uint64(r.remaining()) {
		return nil, false, fmt.Errorf("wire: string length %d exceeds remaining %d bytes", n, r.remaining())
	}
	b, err := r.readN(int(n))
	return b, false, err
}

func appendLenEncInt(buf []byte, v uint64) []byte {
	switch {
	case v < lenEncNull:
		return append(buf, byte(v))
	case v <= 0xFFFF:
		return binary.LittleEndian.AppendUint16(append(buf, lenEncInt16), uint16(v))
	case v <= 0xFFFFFF:
		return append(buf, lenEncInt24, byte(v), byte(v>>8), byte(v>>16))
	default:
		return binary.LittleEndian.AppendUint64(append(buf, lenEncInt64), v)
	}
}

func appendLenEncString(buf []byte, s []byte) []byte {
	if s == nil {
		return append(buf, lenEncNull)
	}
	return append(appendLenEncInt(buf, uint64(len(s))), s...)
}
