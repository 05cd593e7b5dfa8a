// Package sheet holds the cell grid that teksel programs read and write.
package sheet

import (
	"github.com/hashicorp/go-multierror"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/token"
)

// DefaultRows is the highest row index of a grid created without an
// explicit size.
const DefaultRows = 100

// Grid is a rectangle of cells addressed by row index and column letter.
// Rows are numbered 0 through Rows() inclusive. Cells are replaced
// wholesale on every write and never mutated in place.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	cells [][]*object.Cell
}

// New returns a grid with rows 0 through rows, every cell holding empty
// text.
func New(rows int) *Grid {
	if rows < 0 {
		rows = 0
	}
	cells := make([][]*object.Cell, rows+1)
	for r := range cells {
		cells[r] = make([]*object.Cell, Columns)
		for c := range cells[r] {
			cells[r][c] = object.NewEmptyCell(r, ColumnName(c))
		}
	}
	return &Grid{cells: cells}
}

// Rows returns the highest row index.
func (g *Grid) Rows() int {
	return len(g.cells) - 1
}

func (g *Grid) index(row int, column string) (int, error) {
	col, ok := ColumnIndex(column)
	if !ok {
		return 0, errors.NewValueError(token.Position{}, "invalid column %q", column)
	}
	if row < 0 || row >= len(g.cells) {
		return 0, errors.NewValueError(token.Position{},
			"cell %s%d is outside the grid (rows 0 to %d)", column, row, g.Rows())
	}
	return col, nil
}

// Get returns the cell at the given address.
func (g *Grid) Get(row int, column string) (*object.Cell, error) {
	col, err := g.index(row, column)
	if err != nil {
		return nil, err
	}
	return g.cells[row][col], nil
}

// Set stores cell at its own address, replacing the previous cell.
func (g *Grid) Set(cell *object.Cell) error {
	if !object.Primitive(cell.Value()) {
		return errors.NewTypeError(token.Position{},
			"cell %s must hold a primitive value", cell.Address())
	}
	col, err := g.index(cell.Row(), cell.Column())
	if err != nil {
		return err
	}
	g.cells[cell.Row()][col] = cell
	return nil
}

// Put stores a new cell holding value at the given address.
func (g *Grid) Put(row int, column string, value object.Value, formula string) error {
	return g.Set(object.NewCell(value, row, column, formula))
}

// Range returns the cells of the rectangle with corners from and to, row by
// row and column by column within a row. A rectangle whose first corner lies
// below or right of the second is empty.
func (g *Grid) Range(from, to Address) (*object.Range, error) {
	fromCol, err := g.index(from.Row, from.Column)
	if err != nil {
		return nil, err
	}
	toCol, err := g.index(to.Row, to.Column)
	if err != nil {
		return nil, err
	}
	var cells []*object.Cell
	for r := from.Row; r <= to.Row; r++ {
		for c := fromCol; c <= toCol; c++ {
			cells = append(cells, g.cells[r][c])
		}
	}
	return object.NewRange(cells), nil
}

// Each calls fn for every cell in row-major order and stops at the first
// error.
func (g *Grid) Each(fn func(cell *object.Cell) error) error {
	for r := range g.cells {
		for c := range g.cells[r] {
			if err := fn(g.cells[r][c]); err != nil {
				return err
			}
		}
	}
	return nil
}

// NonEmpty returns the cells that hold something other than empty text, in
// row-major order.
func (g *Grid) NonEmpty() []*object.Cell {
	var cells []*object.Cell
	for _, row := range g.cells {
		for _, cell := range row {
			if !cell.IsEmpty() || cell.Formula() != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Clone returns a copy of the grid. Cells are immutable so they are shared.
func (g *Grid) Clone() *Grid {
	cells := make([][]*object.Cell, len(g.cells))
	for r := range g.cells {
		cells[r] = make([]*object.Cell, len(g.cells[r]))
		copy(cells[r], g.cells[r])
	}
	return &Grid{cells: cells}
}

// Validate checks that every cell sits at its own address and holds a
// primitive value. All problems are reported.
func (g *Grid) Validate() error {
	var result *multierror.Error
	for r, row := range g.cells {
		if len(row) != Columns {
			result = multierror.Append(result, errors.NewValueError(token.Position{},
				"row %d has %d columns, expected %d", r, len(row), Columns))
			continue
		}
		for c, cell := range row {
			want := Address{Column: ColumnName(c), Row: r}
			if cell == nil {
				result = multierror.Append(result, errors.NewValueError(token.Position{},
					"cell %s is missing", want))
				continue
			}
			if cell.Row() != r || cell.Column() != want.Column {
				result = multierror.Append(result, errors.NewValueError(token.Position{},
					"cell %s is stored at %s", cell.Address(), want))
			}
			if !object.Primitive(cell.Value()) {
				result = multierror.Append(result, errors.NewTypeError(token.Position{},
					"cell %s must hold a primitive value", want))
			}
		}
	}
	return result.ErrorOrNil()
}
