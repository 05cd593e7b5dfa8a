package object

import (
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/op"
	"github.com/teksel-io/teksel/token"
)

// Errors raised here carry no position. The interpreter attaches the
// position of the expression being evaluated.

func typeErrorf(format string, args ...any) error {
	return errors.NewTypeError(token.Position{}, format, args...)
}

func valueErrorf(format string, args ...any) error {
	return errors.NewValueError(token.Position{}, format, args...)
}

func unsupported(opType op.BinaryOpType, a, b Value) error {
	return typeErrorf("cannot %s %s and %s", opType.Verb(), a.Type(), b.Type())
}
