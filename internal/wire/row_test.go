package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goDBwire/internal/codec"
	"goDBwire/internal/sql"
)

func testColumns(t *testing.T) []sql.Column {
	t.Helper()
	cols, err := sql.ParseColumns("id INT, age TINYINT, score BIGINT, visits INT UNSIGNED, zone MEDIUMINT")
	require.NoError(t, err)
	return cols
}

func int64p(v int64) *int64 { return &v }

func TestParseBinaryRow(t *testing.T) {
	cols := testColumns(t)

	// header, bitmap (5 cols -> 1 byte; age NULL is bit 3)
	buf := []byte{0x00, 0x08,
		0x01, 0x00, 0x00, 0x00, // id = 1
		0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // score = -2
		0xC8, 0x00, 0x00, 0x00, // visits = 200
		0x00, 0x00, 0x80, 0xFF, // zone = -2^23
	}

	row, err := ParseBinaryRow(buf, cols)
	require.NoError(t, err)
	assert.Equal(t, 5, row.Len())
	assert.True(t, row.IsNull(1))
	assert.False(t, row.IsNull(0))

	id, err := ScanInt[int32](row, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), id)

	score, err := ScanInt[int64](row, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), score)

	zone, err := ScanInt[int32](row, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(-1<<23), zone)

	v, ok := row.Get(0)
	require.True(t, ok)
	assert.Equal(t, codec.FormatBinary, v.Format())
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, v.Bytes())
	assert.Equal(t, sql.TypeInfo{Type: sql.TypeLong}, v.TypeInfo())

	visits, ok := row.Get(3)
	require.True(t, ok)
	assert.True(t, visits.TypeInfo().Flags.Contains(sql.FlagUnsigned))
	assert.Equal(t, cols, row.Columns())
	assert.Equal(t, "zone", row.Columns()[4].Name)

	_, ok = row.Get(1)
	assert.False(t, ok)
	_, ok = row.Get(99)
	assert.False(t, ok)
}

func TestParseBinaryRow_Errors(t *testing.T) {
	cols := testColumns(t)

	_, err := ParseBinaryRow(nil, cols)
	require.Error(t, err)

	_, err = ParseBinaryRow([]byte{0x01, 0x00}, cols)
	require.ErrorContains(t, err, "header")

	_, err = ParseBinaryRow([]byte{0x00}, cols)
	require.ErrorContains(t, err, "bitmap")

	// id present but only 2 of its 4 bytes
	_, err = ParseBinaryRow([]byte{0x00, 0x00, 0x01, 0x00}, cols)
	require.ErrorContains(t, err, "truncated")

	all := []*int64{int64p(1), int64p(2), int64p(3), int64p(4), int64p(5)}
	buf, err := EncodeBinaryRow(cols, all)
	require.NoError(t, err)
	_, err = ParseBinaryRow(append(buf, 0x00), cols)
	require.ErrorContains(t, err, "trailing")

	// Every prefix of a valid row fails cleanly.
	for n := 0; n < len(buf); n++ {
		_, err := ParseBinaryRow(buf[:n], cols)
		require.Error(t, err, "prefix %d", n)
	}
}

func TestEncodeBinaryRow_RoundTrip(t *testing.T) {
	cols := testColumns(t)
	values := []*int64{int64p(math.MinInt32), nil, int64p(math.MaxInt64), int64p(4000000000), int64p(1<<23 - 1)}

	buf, err := EncodeBinaryRow(cols, values)
	require.NoError(t, err)

	row, err := ParseBinaryRow(buf, cols)
	require.NoError(t, err)

	id, err := ScanInt[int32](row, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), id)

	_, valid, err := ScanNullableInt[int8](row, 1)
	require.NoError(t, err)
	assert.False(t, valid)

	score, err := ScanInt[int64](row, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), score)

	zone, err := ScanInt[int32](row, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(1<<23-1), zone)

	_, err = EncodeBinaryRow(cols, values[:2])
	require.Error(t, err)

	_, err = EncodeBinaryRow(cols, []*int64{int64p(1 << 32), nil, nil, nil, nil})
	require.ErrorContains(t, err, "does not fit")
}

func TestParseTextRow(t *testing.T) {
	cols := testColumns(t)
	buf := EncodeTextRow([][]byte{[]byte("42"), nil, []byte("-9223372036854775808"), []byte("4000000000"), []byte("abc")})

	row, err := ParseTextRow(buf, cols)
	require.NoError(t, err)

	id, err := ScanInt[int8](row, 0)
	require.NoError(t, err)
	assert.Equal(t, int8(42), id)

	_, err = ScanInt[int8](row, 1)
	require.ErrorIs(t, err, ErrNull)

	score, err := ScanInt[int64](row, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), score)

	_, err = ScanInt[int16](row, 2)
	var overflow *codec.RangeOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, 16, overflow.Width)

	_, err = ScanInt[int32](row, 4)
	var lexical *codec.LexicalParseError
	require.ErrorAs(t, err, &lexical)
	assert.Contains(t, err.Error(), `"zone"`)
}

func TestParseTextRow_Errors(t *testing.T) {
	cols := testColumns(t)[:2]

	_, err := ParseTextRow([]byte{0x02, '4'}, cols)
	require.ErrorContains(t, err, "truncated")

	_, err = ParseTextRow([]byte{0xFF}, cols)
	require.ErrorContains(t, err, "prefix")

	_, err = ParseTextRow(append(EncodeTextRow([][]byte{[]byte("1"), []byte("2")}), 0x00), cols)
	require.ErrorContains(t, err, "trailing")

	// 0xFC length claiming more bytes than present
	_, err = ParseTextRow([]byte{0xFC, 0x00, 0x01, '1'}, cols)
	require.Error(t, err)
}

func TestScanInt_TypeMismatch(t *testing.T) {
	cols := testColumns(t)
	buf, err := EncodeBinaryRow(cols, []*int64{int64p(1), int64p(2), int64p(3), int64p(200), int64p(5)})
	require.NoError(t, err)
	row, err := ParseBinaryRow(buf, cols)
	require.NoError(t, err)

	_, err = ScanInt[int64](row, 3)
	var mismatch *codec.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "int64", mismatch.Target)
	assert.True(t, mismatch.Type.Flags.Contains(sql.FlagUnsigned))

	_, err = ScanInt[int32](row, 5)
	require.ErrorContains(t, err, "out of range")

	_, err = ScanInt[int32](row, -1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNull))
}

func TestReadLenEncString(t *testing.T) {
	r := reader{buf: []byte{0x03, 'a', 'b', 'c', lenEncNull, 0x00}}

	s, isNull, err := r.readLenEncString()
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, []byte("abc"), s)

	s, isNull, err = r.readLenEncString()
	require.NoError(t, err)
	assert.True(t, isNull)
	assert.Nil(t, s)

	s, isNull, err = r.readLenEncString()
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Empty(t, s)
	assert.Equal(t, 0, r.remaining())

	_, _, err = r.readLenEncString()
	require.Error(t, err)
}

func TestLenEnc(t *testing.T) {
	for _, v := range []uint64{0, 250, 251, 0xFFFF, 0x10000, 0xFFFFFF, 0x1000000, math.MaxUint64} {
		buf := appendLenEncInt(nil, v)
		r := reader{buf: buf}
		got, isNull, err := r.readLenEncInt()
		require.NoError(t, err, "%d", v)
		assert.False(t, isNull)
		assert.Equal(t, v, got)
		assert.Equal(t, 0, r.remaining())
	}

	long := make([]byte, 300)
	r := reader{buf: appendLenEncString(nil, long)}
	s, isNull, err := r.readLenEncString()
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Len(t, s, 300)
}
