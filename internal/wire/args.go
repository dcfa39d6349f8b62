package wire

import (
	"goDBwire/internal/codec"
	"goDBwire/internal/sql"
)

// unsignedParamFlag marks an unsigned parameter in the type block.
const unsignedParamFlag = 0x80

// Arguments collects outbound parameters for a prepared statement: one
// declared type per parameter, a NULL bitmap and the encoded values of
// the non-NULL parameters.
type Arguments struct {
	types  []sql.TypeInfo
	nulls  []bool
	values []byte
}

// BindInt appends an integer parameter. A nil v binds NULL.
func BindInt[T codec.Int](a *Arguments, v *T) {
	ti := codec.TypeInfoOf[T]()
	if v == nil {
		a.BindNull(ti)
		return
	}

	var isNull codec.IsNull
	a.values, isNull = codec.Encode(a.values, *v)
	a.types = append(a.types, ti)
	a.nulls = append(a.nulls, bool(isNull))
}

// BindNull appends a NULL parameter declared with type ti.
func (a *Arguments) BindNull(ti sql.TypeInfo) {
	a.types = append(a.types, ti)
	a.nulls = append(a.nulls, true)
}

// Len returns the number of bound parameters.
func (a *Arguments) Len() int { return len(a.types) }

func (a *Arguments) Types() []sql.TypeInfo { return a.types }

// Values returns the encoded non-NULL parameter values, in bind order.
func (a *Arguments) Values() []byte { return a.values }

// NullBitmap returns (n+7)/8 bytes with bit i set when parameter i is NULL.
func (a *Arguments) NullBitmap() []byte {
	bitmap := make([]byte, (len(a.nulls)+7)/8)
	for i, isNull := range a.nulls {
		if isNull {
			bitmap[i/8] |= 1 << (i % 8)
		}
	}
	return bitmap
}

// TypeBlock returns the two bytes per parameter sent ahead of the values:
// the column type code and 0x80 for unsigned types.
func (a *Arguments) TypeBlock() []byte {
	block := make([]byte, 0, 2*len(a.types))
	for _, ti := range a.types {
		var flag byte
		if ti.Flags.Contains(sql.FlagUnsigned) {
			flag = unsignedParamFlag
		}
		block = append(block, byte(ti.Type), flag)
	}
	return block
}
