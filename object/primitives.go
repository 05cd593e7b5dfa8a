package object

import (
	"strconv"
)

// Int wraps int64.
type Int struct {
	value int64
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}

func (i *Int) Type() Type      { return INT }
func (i *Int) Value() int64    { return i.value }
func (i *Int) Inspect() string { return strconv.FormatInt(i.value, 10) }
func (i *Int) Interface() any  { return i.value }
func (i *Int) String() string  { return i.Inspect() }
func (i *Int) isValue()        {}

// Float wraps float64.
type Float struct {
	value float64
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func (f *Float) Type() Type      { return FLOAT }
func (f *Float) Value() float64  { return f.value }
func (f *Float) Inspect() string { return strconv.FormatFloat(f.value, 'f', -1, 64) }
func (f *Float) Interface() any  { return f.value }
func (f *Float) String() string  { return f.Inspect() }
func (f *Float) isValue()        {}

// Text wraps a string.
type Text struct {
	value string
}

// EmptyText is the value of a cell that was never assigned.
var EmptyText = &Text{}

func NewText(value string) *Text {
	if value == "" {
		return EmptyText
	}
	return &Text{value: value}
}

func (t *Text) Type() Type      { return TEXT }
func (t *Text) Value() string   { return t.value }
func (t *Text) Inspect() string { return t.value }
func (t *Text) Interface() any  { return t.value }
func (t *Text) String() string  { return strconv.Quote(t.value) }
func (t *Text) isValue()        {}

// Bool wraps bool. Use True, False or NewBool rather than constructing one.
type Bool struct {
	value bool
}

func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}

func (b *Bool) Type() Type      { return BOOL }
func (b *Bool) Value() bool     { return b.value }
func (b *Bool) Inspect() string { return strconv.FormatBool(b.value) }
func (b *Bool) Interface() any  { return b.value }
func (b *Bool) String() string  { return b.Inspect() }
func (b *Bool) isValue()        {}
