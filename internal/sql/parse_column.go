package sql

import (
	"fmt"
	"strings"
)

// ParseColumnType parses a column type declaration such as
// "TINYINT UNSIGNED NOT NULL" into a TypeInfo.
//
// Supported types: TINYINT, SMALLINT, MEDIUMINT, INT/INTEGER, BIGINT,
// each with an optional display width, written either attached to the
// keyword ("INT(11)") or as the next token ("INT (11)"). Supported
// modifiers: SIGNED, UNSIGNED, ZEROFILL, NOT NULL, PRIMARY KEY,
// UNIQUE [KEY].
func ParseColumnType(def string) (TypeInfo, error) {
	tokens := strings.Fields(strings.ToUpper(def))
	if len(tokens) == 0 {
		return TypeInfo{}, fmt.Errorf("empty column type")
	}

	var ti TypeInfo
	switch stripDisplayWidth(tokens[0]) {
	case "TINYINT":
		ti.Type = TypeTiny
	case "SMALLINT":
		ti.Type = TypeShort
	case "MEDIUMINT":
		ti.Type = TypeInt24
	case "INT", "INTEGER":
		ti.Type = TypeLong
	case "BIGINT":
		ti.Type = TypeLongLong
	default:
		return TypeInfo{}, fmt.Errorf("unknown column type %q in %q", tokens[0], def)
	}

	start := 1
	if len(tokens) > 1 && isDisplayWidth(tokens[1]) {
		// "INT (11)"
		start = 2
	}

	for i := start; i < len(tokens); i++ {
		switch tokens[i] {
		case "SIGNED":
			// default
		case "UNSIGNED":
			ti.Flags |= FlagUnsigned
		case "ZEROFILL":
			// ZEROFILL implies UNSIGNED on the server.
			ti.Flags |= FlagZerofill | FlagUnsigned
		case "NOT":
			if i+1 >= len(tokens) || tokens[i+1] != "NULL" {
				return TypeInfo{}, fmt.Errorf("expected NULL after NOT in %q", def)
			}
			ti.Flags |= FlagNotNull
			i++
		case "PRIMARY":
			if i+1 >= len(tokens) || tokens[i+1] != "KEY" {
				return TypeInfo{}, fmt.Errorf("expected KEY after PRIMARY in %q", def)
			}
			ti.Flags |= FlagPrimaryKey | FlagNotNull
			i++
		case "UNIQUE":
			ti.Flags |= FlagUniqueKey
			if i+1 < len(tokens) && tokens[i+1] == "KEY" {
				i++
			}
		default:
			return TypeInfo{}, fmt.Errorf("unknown column modifier %q in %q", tokens[i], def)
		}
	}

	return ti, nil
}

// ParseColumns parses a comma-separated list of column definitions,
// e.g. "id INT PRIMARY KEY, age TINYINT UNSIGNED".
func ParseColumns(s string) ([]Column, error) {
	colDefs := splitCommaSeparated(s)
	if len(colDefs) == 0 {
		return nil, fmt.Errorf("no column definitions")
	}

	columns := make([]Column, 0, len(colDefs))
	for _, def := range colDefs {
		parts := strings.Fields(def)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid column definition: %q", def)
		}

		ti, err := ParseColumnType(strings.Join(parts[1:], " "))
		if err != nil {
			return nil, err
		}

		columns = append(columns, Column{
			Name: parts[0],
			Type: ti,
		})
	}

	return columns, nil
}
