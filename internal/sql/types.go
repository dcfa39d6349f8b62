package sql

import "strings"

// ColumnType is the server-declared type of a column, using the
// protocol's type codes as they appear in a column definition packet.
type ColumnType uint8

const (
	TypeTiny     ColumnType = 0x01 // TINYINT
	TypeShort    ColumnType = 0x02 // SMALLINT
	TypeLong     ColumnType = 0x03 // INT
	TypeLongLong ColumnType = 0x08 // BIGINT
	TypeInt24    ColumnType = 0x09 // MEDIUMINT
)

// IsInteger reports whether t is one of the integer column types.
func (t ColumnType) IsInteger() bool {
	switch t {
	case TypeTiny, TypeShort, TypeLong, TypeInt24, TypeLongLong:
		return true
	}
	return false
}

// BinaryWidth returns the number of bytes a value of this type occupies
// in a binary result row, or 0 for types without a fixed width.
// MEDIUMINT is sent as 4 bytes even though its range fits in 3.
func (t ColumnType) BinaryWidth() int {
	switch t {
	case TypeTiny:
		return 1
	case TypeShort:
		return 2
	case TypeLong, TypeInt24:
		return 4
	case TypeLongLong:
		return 8
	}
	return 0
}

func (t ColumnType) String() string {
	switch t {
	case TypeTiny:
		return "TINYINT"
	case TypeShort:
		return "SMALLINT"
	case TypeLong:
		return "INT"
	case TypeInt24:
		return "MEDIUMINT"
	case TypeLongLong:
		return "BIGINT"
	}
	return "UNKNOWN"
}

// ColumnFlags holds the column definition flag bits.
type ColumnFlags uint16

const (
	FlagNotNull     ColumnFlags = 1 << 0
	FlagPrimaryKey  ColumnFlags = 1 << 1
	FlagUniqueKey   ColumnFlags = 1 << 2
	FlagMultipleKey ColumnFlags = 1 << 3
	FlagBlob        ColumnFlags = 1 << 4
	FlagUnsigned    ColumnFlags = 1 << 5
	FlagZerofill    ColumnFlags = 1 << 6
	FlagBinary      ColumnFlags = 1 << 7
)

// Contains reports whether every bit of f is set.
func (c ColumnFlags) Contains(f ColumnFlags) bool {
	return c&f == f
}

// TypeInfo describes the declared wire type of a value: its type tag and
// flags. It is filled in once when column metadata is parsed and passed
// around by value, so it is never mutated afterwards.
type TypeInfo struct {
	Type  ColumnType
	Flags ColumnFlags
}

// BinaryTypeInfo returns the TypeInfo for a signed value of type t, as
// used when declaring outbound parameter types.
func BinaryTypeInfo(t ColumnType) TypeInfo {
	return TypeInfo{Type: t}
}

// String renders the type the way it would be written in DDL,
// e.g. "INT UNSIGNED".
func (ti TypeInfo) String() string {
	parts := []string{ti.Type.String()}
	if ti.Flags.Contains(FlagUnsigned) {
		parts = append(parts, "UNSIGNED")
	}
	if ti.Flags.Contains(FlagZerofill) {
		parts = append(parts, "ZEROFILL")
	}
	return strings.Join(parts, " ")
}

// Column describes metadata for a single column in a result set.
type Column struct {
	Name string
	Type TypeInfo
}
