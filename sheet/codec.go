package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/token"
)

// CellJSON is the serialized shape of one cell.
type CellJSON struct {
	Value   ValueJSON `json:"value"`
	Row     int       `json:"row"`
	Column  string    `json:"column"`
	Formula string    `json:"formula"`
}

// ValueJSON wraps a cell's primitive payload. Type is written on output and
// honored on input when present.
type ValueJSON struct {
	Value any         `json:"value"`
	Type  object.Type `json:"type,omitempty"`
}

// EncodeCell converts a cell to its serialized shape.
func EncodeCell(cell *object.Cell) CellJSON {
	value := cell.Value()
	return CellJSON{
		Value:   ValueJSON{Value: object.ToInterface(value), Type: value.Type()},
		Row:     cell.Row(),
		Column:  cell.Column(),
		Formula: cell.Formula(),
	}
}

// DecodeCell converts a serialized cell to a cell value.
func DecodeCell(c CellJSON) (*object.Cell, error) {
	if _, ok := ColumnIndex(c.Column); !ok {
		return nil, errors.NewValueError(token.Position{}, "invalid column %q", c.Column)
	}
	if c.Row > MaxRow {
		return nil, errors.NewValueError(token.Position{}, "row %d of cell %s is beyond the last row %d", c.Row, c.Column, MaxRow)
	}
	value, err := object.FromType(c.Value.Type, c.Value.Value)
	if err != nil {
		return nil, fmt.Errorf("cell %s%d: %w", c.Column, c.Row, err)
	}
	return object.NewCell(value, c.Row, c.Column, c.Formula), nil
}

// MarshalJSON encodes the grid as an array of rows, each an array of cells.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]CellJSON, len(g.cells))
	for r, row := range g.cells {
		rows[r] = make([]CellJSON, len(row))
		for c, cell := range row {
			rows[r][c] = EncodeCell(cell)
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes either an array of rows of cells, as written by
// MarshalJSON, or an object mapping addresses to values such as
// {"A1": 10, "B1": "=A1*2"}. Null cells are left empty. The grid grows to
// hold the highest row present.
func (g *Grid) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data, DefaultRows)
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}

// Decode parses a serialized grid. The result has at least rows rows. Every
// invalid cell is reported.
func Decode(data []byte, rows int) (*Grid, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var values map[string]any
		if err := unmarshal(data, &values); err != nil {
			return nil, err
		}
		return FromMap(values, rows)
	}
	var cells [][]*CellJSON
	if err := unmarshal(data, &cells); err != nil {
		return nil, err
	}
	var result *multierror.Error
	var decoded []*object.Cell
	for _, row := range cells {
		for _, c := range row {
			if c == nil {
				continue
			}
			cell, err := DecodeCell(*c)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			decoded = append(decoded, cell)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fill(decoded, rows)
}

// FromMap builds a grid from a sparse map of addresses to scalar values.
func FromMap(values map[string]any, rows int) (*Grid, error) {
	var result *multierror.Error
	var cells []*object.Cell
	for _, key := range sortedKeys(values) {
		addr, err := ParseAddress(key)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		value, err := object.FromInterface(values[key])
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("cell %s: %w", key, err))
			continue
		}
		cells = append(cells, object.NewCell(value, addr.Row, addr.Column, ""))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fill(cells, rows)
}

func fill(cells []*object.Cell, rows int) (*Grid, error) {
	for _, cell := range cells {
		if cell.Row() > rows {
			rows = cell.Row()
		}
	}
	g := New(rows)
	var result *multierror.Error
	for _, cell := range cells {
		if err := g.Set(cell); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return g, nil
}

func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.NewValueError(token.Position{}, "invalid grid: %s", err)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
