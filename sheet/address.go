package sheet

import (
	"strconv"

	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/token"
)

const (
	// Columns is the number of grid columns, A through Z.
	Columns = 26

	// MaxRow is the highest row a cell reference can address.
	MaxRow = 999
)

// Address identifies one cell of a grid.
type Address struct {
	Column string
	Row    int
}

func (a Address) String() string {
	return a.Column + strconv.Itoa(a.Row)
}

// ParseAddress parses a cell reference such as "B10". The column is a single
// upper case letter and the row has one to three digits.
func ParseAddress(s string) (Address, error) {
	if len(s) < 2 || len(s) > 4 {
		return Address{}, invalidAddress(s)
	}
	if _, ok := ColumnIndex(s[:1]); !ok {
		return Address{}, invalidAddress(s)
	}
	for _, ch := range s[1:] {
		if ch < '0' || ch > '9' {
			return Address{}, invalidAddress(s)
		}
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Address{}, invalidAddress(s)
	}
	return Address{Column: s[:1], Row: row}, nil
}

func invalidAddress(s string) error {
	return errors.NewValueError(token.Position{}, "invalid cell address %q", s)
}

// ColumnIndex maps a column letter to its index: A is 0 and Z is 25.
func ColumnIndex(column string) (int, bool) {
	if len(column) != 1 || column[0] < 'A' || column[0] > 'Z' {
		return 0, false
	}
	return int(column[0] - 'A'), true
}

// ColumnName maps a column index to its letter.
func ColumnName(index int) string {
	return string(rune('A' + index))
}
