package object

import (
	"strconv"
	"strings"
)

// Cell is the value of one grid cell: a primitive payload, the cell's
// address and the formula text it was last assigned from.
type Cell struct {
	value   Value
	row     int
	column  string
	formula string
}

// NewCell returns a cell holding value. The value must be primitive; the
// interpreter checks this before writing to the grid.
func NewCell(value Value, row int, column string, formula string) *Cell {
	return &Cell{value: value, row: row, column: column, formula: formula}
}

// NewEmptyCell returns a cell holding empty text and no formula.
func NewEmptyCell(row int, column string) *Cell {
	return &Cell{value: EmptyText, row: row, column: column}
}

func (c *Cell) Type() Type      { return CELL }
func (c *Cell) Value() Value    { return c.value }
func (c *Cell) Row() int        { return c.row }
func (c *Cell) Column() string  { return c.column }
func (c *Cell) Formula() string { return c.formula }
func (c *Cell) Inspect() string { return c.value.Inspect() }
func (c *Cell) Interface() any  { return c.value.Interface() }
func (c *Cell) isValue()        {}

// Address returns the cell reference, such as "B10".
func (c *Cell) Address() string {
	return c.column + strconv.Itoa(c.row)
}

// IsEmpty reports whether the cell holds empty text.
func (c *Cell) IsEmpty() bool {
	t, ok := c.value.(*Text)
	return ok && t.value == ""
}

// WithValue returns a copy of the cell holding a different value.
func (c *Cell) WithValue(value Value) *Cell {
	return &Cell{value: value, row: c.row, column: c.column, formula: c.formula}
}

func (c *Cell) String() string {
	return c.Address() + "(" + Literal(c).Inspect() + ")"
}

// Range is an ordered list of cells, row by row.
type Range struct {
	cells []*Cell
}

func NewRange(cells []*Cell) *Range {
	return &Range{cells: cells}
}

func (r *Range) Type() Type     { return RANGE }
func (r *Range) Cells() []*Cell { return r.cells }
func (r *Range) Len() int       { return len(r.cells) }
func (r *Range) isValue()       {}

// Value returns the value of the first cell, or nil for an empty range.
func (r *Range) Value() Value {
	if len(r.cells) == 0 {
		return nil
	}
	return r.cells[0].value
}

func (r *Range) Interface() any {
	if len(r.cells) == 0 {
		return nil
	}
	return r.cells[0].Interface()
}

func (r *Range) Inspect() string {
	parts := make([]string, len(r.cells))
	for i, c := range r.cells {
		parts[i] = c.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (r *Range) String() string { return r.Inspect() }

// Ident is a value read from a variable, carrying the variable name. The
// interpreter wraps cells and ranges read from variables so that assigning
// the result of an operation back to a variable updates the grid.
type Ident struct {
	name  string
	value Value
}

func NewIdent(name string, value Value) *Ident {
	return &Ident{name: name, value: value}
}

func (i *Ident) Type() Type      { return IDENT }
func (i *Ident) Name() string    { return i.name }
func (i *Ident) Value() Value    { return i.value }
func (i *Ident) Inspect() string { return i.value.Inspect() }
func (i *Ident) Interface() any  { return i.value.Interface() }
func (i *Ident) String() string  { return i.name + "=" + i.value.Inspect() }
func (i *Ident) isValue()        {}
