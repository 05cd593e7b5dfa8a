// Package object provides the runtime values of teksel programs.
//
// A Value is one of a closed set of types. Callers type switch on the
// concrete types:
//
//	switch v := v.(type) {
//	case *object.Int:
//		// do something with v.Value()
//	case *object.Cell:
//		// do something with v.Value(), v.Row() and v.Column()
//	}
//
// Values are immutable. Operations return new values.
package object

// Type of a value as a string.
type Type string

// Type constants
const (
	INT   Type = "integer"
	FLOAT Type = "float"
	TEXT  Type = "text"
	BOOL  Type = "boolean"
	CELL  Type = "cell"
	RANGE Type = "range"
	IDENT Type = "identifier"
)

var (
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Value is the interface implemented by every runtime value. A nil Value
// means undefined.
type Value interface {
	// Type of the value.
	Type() Type

	// Inspect returns the textual form of the value, as used when it is
	// concatenated with text or stored as a cell formula.
	Inspect() string

	// Interface converts the primitive payload of the value to a native Go
	// value: int64, float64, string or bool. It returns nil for an empty
	// range.
	Interface() any

	isValue()
}

// Primitive reports whether v is an integer, float, text or boolean.
func Primitive(v Value) bool {
	switch v.(type) {
	case *Int, *Float, *Text, *Bool:
		return true
	}
	return false
}

// Literal reduces v to its primitive payload, discarding cell, range and
// identifier wrapping. An empty range reduces to empty text. Literal(nil)
// is nil.
func Literal(v Value) Value {
	switch v := v.(type) {
	case *Cell:
		return v.value
	case *Range:
		if len(v.cells) == 0 {
			return EmptyText
		}
		return v.cells[0].value
	case *Ident:
		return Literal(v.value)
	}
	return v
}

// Unwrap strips identifier wrapping from v.
func Unwrap(v Value) Value {
	for {
		ident, ok := v.(*Ident)
		if !ok {
			return v
		}
		v = ident.value
	}
}

// IsTrue reports whether v reduces to the boolean true.
func IsTrue(v Value) bool {
	b, ok := Literal(v).(*Bool)
	return ok && b.value
}

// Truthy reports whether v reduces to a value other than false, zero or
// empty text.
func Truthy(v Value) bool {
	switch v := Literal(v).(type) {
	case *Bool:
		return v.value
	case *Int:
		return v.value != 0
	case *Float:
		return v.value != 0
	case *Text:
		return v.value != ""
	}
	return false
}
