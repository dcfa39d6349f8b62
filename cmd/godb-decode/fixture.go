package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"goDBwire/internal/codec"
	"goDBwire/internal/sql"
	"goDBwire/internal/wire"
)

// fixture is the on-disk replay format.
type fixture struct {
	// Columns is a column definition list, e.g. "id INT, age TINYINT UNSIGNED".
	Columns string `yaml:"columns"`

	// Target is the native width in bits every cell is decoded into.
	Target int `yaml:"target"`

	Rows   []fixtureRow   `yaml:"rows"`
	Params []fixtureParam `yaml:"params"`
}

// fixtureRow is either a raw payload (Hex) or a list of values the
// payload is built from. A null value is sent as NULL.
type fixtureRow struct {
	Format string    `yaml:"format"`
	Hex    string    `yaml:"hex,omitempty"`
	Values []*string `yaml:"values,omitempty"`
}

type fixtureParam struct {
	Type  string `yaml:"type"`
	Value *int64 `yaml:"value"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	if fx.Target == 0 {
		fx.Target = 64
	}
	return &fx, nil
}

// replay decodes every row of fx and encodes its params, writing a table
// to w. Cell-level decode failures are printed in place and do not stop
// the replay.
func replay(w io.Writer, logger *slog.Logger, fx *fixture) error {
	switch fx.Target {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("unsupported target width %d", fx.Target)
	}

	cols, err := sql.ParseColumns(fx.Columns)
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	fmt.Fprintln(w, strings.Join(names, " | "))

	for n, fr := range fx.Rows {
		row, err := parseRow(cols, fr)
		if err != nil {
			return fmt.Errorf("row %d: %w", n, err)
		}

		parts := make([]string, row.Len())
		for i := range parts {
			cell, err := formatCell(row, i, fx.Target)
			if err != nil {
				col := row.Columns()[i]
				logger.Warn("decode failed", "row", n, "column", col.Name, "type", col.Type.String(), "error", err)
				cell = "ERR(" + err.Error() + ")"
			}
			parts[i] = cell
		}
		fmt.Fprintln(w, strings.Join(parts, " | "))
	}

	if len(fx.Params) == 0 {
		return nil
	}

	var args wire.Arguments
	for i, p := range fx.Params {
		if err := bindParam(&args, p); err != nil {
			return fmt.Errorf("param %d: %w", i, err)
		}
	}
	fmt.Fprintf(w, "params: %d\n", args.Len())
	fmt.Fprintf(w, "null bitmap: %s\n", hex.EncodeToString(args.NullBitmap()))
	fmt.Fprintf(w, "types: %s\n", hex.EncodeToString(args.TypeBlock()))
	fmt.Fprintf(w, "values: %s\n", hex.EncodeToString(args.Values()))
	return nil
}

func parseRow(cols []sql.Column, fr fixtureRow) (wire.Row, error) {
	payload, err := rowPayload(cols, fr)
	if err != nil {
		return wire.Row{}, err
	}

	switch fr.Format {
	case "binary":
		return wire.ParseBinaryRow(payload, cols)
	case "text", "":
		return wire.ParseTextRow(payload, cols)
	}
	return wire.Row{}, fmt.Errorf("unknown row format %q", fr.Format)
}

func rowPayload(cols []sql.Column, fr fixtureRow) ([]byte, error) {
	if fr.Hex != "" {
		payload, err := hex.DecodeString(strings.ReplaceAll(fr.Hex, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("hex payload: %w", err)
		}
		return payload, nil
	}

	if fr.Format == "binary" {
		values := make([]*int64, len(fr.Values))
		for i, s := range fr.Values {
			if s == nil {
				continue
			}
			v, err := strconv.ParseInt(*s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			values[i] = &v
		}
		return wire.EncodeBinaryRow(cols, values)
	}

	values := make([][]byte, len(fr.Values))
	for i, s := range fr.Values {
		if s != nil {
			values[i] = []byte(*s)
		}
	}
	return wire.EncodeTextRow(values), nil
}

func formatCell(row wire.Row, i int, target int) (string, error) {
	switch target {
	case 8:
		return scanCell[int8](row, i)
	case 16:
		return scanCell[int16](row, i)
	case 32:
		return scanCell[int32](row, i)
	default:
		return scanCell[int64](row, i)
	}
}

func scanCell[T codec.Int](row wire.Row, i int) (string, error) {
	v, valid, err := wire.ScanNullableInt[T](row, i)
	if err != nil {
		return "", err
	}
	if !valid {
		return "NULL", nil
	}
	return strconv.FormatInt(int64(v), 10), nil
}

// bindParam binds p using the native type matching its declared column
// type, rejecting values that do not fit.
func bindParam(args *wire.Arguments, p fixtureParam) error {
	ti, err := sql.ParseColumnType(p.Type)
	if err != nil {
		return err
	}
	if ti.Flags.Contains(sql.FlagUnsigned) {
		return fmt.Errorf("unsigned parameter type %s is not supported", ti)
	}

	switch ti.Type {
	case sql.TypeTiny:
		return bindNarrowed[int8](args, p.Value)
	case sql.TypeShort:
		return bindNarrowed[int16](args, p.Value)
	case sql.TypeLong, sql.TypeInt24:
		return bindNarrowed[int32](args, p.Value)
	default:
		return bindNarrowed[int64](args, p.Value)
	}
}

func bindNarrowed[T codec.Int](args *wire.Arguments, v *int64) error {
	if v == nil {
		wire.BindInt[T](args, nil)
		return nil
	}
	wide, _ := codec.Encode(nil, *v)
	n, err := codec.Decode[T](codec.NewValueRef(wide, codec.FormatBinary, codec.TypeInfoOf[int64]()))
	if err != nil {
		return err
	}
	wire.BindInt(args, &n)
	return nil
}
