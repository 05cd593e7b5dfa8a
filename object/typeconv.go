package object

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AsInt returns the integer payload of v.
func AsInt(v Value) (int64, error) {
	switch v := Literal(v).(type) {
	case *Int:
		return v.value, nil
	case nil:
		return 0, typeErrorf("expected an integer (undefined given)")
	default:
		return 0, typeErrorf("expected an integer (%s given)", v.Type())
	}
}

// AsText returns the text payload of v.
func AsText(v Value) (string, error) {
	switch v := Literal(v).(type) {
	case *Text:
		return v.value, nil
	case nil:
		return "", typeErrorf("expected text (undefined given)")
	default:
		return "", typeErrorf("expected text (%s given)", v.Type())
	}
}

// FromInterface converts a decoded JSON or YAML scalar to a primitive value.
// Integral floats become integers. A nil input becomes empty text.
func FromInterface(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return EmptyText, nil
	case Value:
		if !Primitive(v) {
			return nil, typeErrorf("expected a primitive value (%s given)", v.Type())
		}
		return v, nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewText(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int32:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint:
		return NewInt(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, valueErrorf("integer %d is out of range", v)
		}
		return NewInt(int64(v)), nil
	case float32:
		return fromFloat(float64(v)), nil
	case float64:
		return fromFloat(v), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return NewInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, valueErrorf("invalid number %q", string(v))
		}
		return NewFloat(f), nil
	}
	return nil, typeErrorf("unsupported value of type %T", v)
}

func fromFloat(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return NewInt(int64(f))
	}
	return NewFloat(f)
}

// FromType converts a decoded scalar to a primitive of the named type.
// It is used when a serialized cell records its type explicitly.
func FromType(typ Type, v any) (Value, error) {
	value, err := FromInterface(v)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "":
		return value, nil
	case INT:
		switch value := value.(type) {
		case *Int:
			return value, nil
		case *Float:
			return NewInt(int64(value.value)), nil
		}
	case FLOAT:
		if f, ok := toFloat(value); ok {
			return NewFloat(f), nil
		}
	case TEXT:
		if t, ok := value.(*Text); ok {
			return t, nil
		}
		return NewText(value.Inspect()), nil
	case BOOL:
		if b, ok := value.(*Bool); ok {
			return b, nil
		}
	default:
		return nil, valueErrorf("unknown value type %q", typ)
	}
	return nil, typeErrorf("cannot convert %s to %s", value.Type(), typ)
}

// ToInterface converts v to a native Go value for serialization.
func ToInterface(v Value) any {
	if v == nil {
		return nil
	}
	return v.Interface()
}

// Describe renders v for display, quoting text.
func Describe(v Value) string {
	switch v := v.(type) {
	case nil:
		return "undefined"
	case fmt.Stringer:
		return v.String()
	}
	return v.Inspect()
}
