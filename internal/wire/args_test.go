package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goDBwire/internal/codec"
	"goDBwire/internal/sql"
)

func TestArguments_Layout(t *testing.T) {
	var args Arguments

	a := int8(-1)
	b := int32(1)
	c := int64(258)
	BindInt(&args, &a)
	BindInt[int16](&args, nil)
	BindInt(&args, &b)
	args.BindNull(sql.TypeInfo{Type: sql.TypeLong, Flags: sql.FlagUnsigned})
	BindInt(&args, &c)

	require.Equal(t, 5, args.Len())
	assert.Equal(t, []byte{0x0A}, args.NullBitmap())
	assert.Equal(t, []byte{
		0x01, 0x00,
		0x02, 0x00,
		0x03, 0x00,
		0x03, 0x80,
		0x08, 0x00,
	}, args.TypeBlock())
	assert.Equal(t, []byte{
		0xFF,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x01, 0, 0, 0, 0, 0, 0,
	}, args.Values())

	types := args.Types()
	assert.Equal(t, sql.TypeShort, types[1].Type)
}

func TestArguments_DecodeBack(t *testing.T) {
	var args Arguments
	for _, v := range []int16{-32768, -1, 0, 32767} {
		v := v
		BindInt(&args, &v)
	}

	values := args.Values()
	require.Len(t, values, 8)
	for i, want := range []int16{-32768, -1, 0, 32767} {
		ref := codec.NewValueRef(values[2*i:2*i+2], codec.FormatBinary, args.Types()[i])
		got, err := codec.Decode[int16](ref)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestArguments_Empty(t *testing.T) {
	var args Arguments
	assert.Equal(t, 0, args.Len())
	assert.Empty(t, args.NullBitmap())
	assert.Empty(t, args.TypeBlock())
	assert.Empty(t, args.Values())
}
