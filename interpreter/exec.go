package interpreter

import (
	"context"

	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/token"
)

// frame is one function activation.
type frame struct {
	name      string
	returning bool
	result    object.Value
}

// execContext carries the state of one Run through evaluation.
type execContext struct {
	ctx    context.Context
	frames []*frame

	// lastCall is the function entered most recently, and streak the number
	// of calls to it in a row. A call to any other function starts over.
	lastCall string
	streak   int
}

// enter records a call of name and returns the length of the current streak
// of calls to it.
func (ec *execContext) enter(name string) int {
	if ec.lastCall == name {
		ec.streak++
	} else {
		ec.lastCall = name
		ec.streak = 1
	}
	return ec.streak
}

func (ec *execContext) top() *frame {
	if len(ec.frames) == 0 {
		return nil
	}
	return ec.frames[len(ec.frames)-1]
}

// returning reports whether the current activation has executed a return
// statement and its remaining statements must be skipped.
func (ec *execContext) returning() bool {
	f := ec.top()
	return f != nil && f.returning
}

func (ec *execContext) cancelled() error {
	select {
	case <-ec.ctx.Done():
		return ec.ctx.Err()
	default:
		return nil
	}
}

func (in *Interpreter) call(ec *execContext, x *ast.Call) (object.Value, error) {
	name := x.Fun.Name
	fn, ok := in.program.Func(name)
	if !ok {
		err := errors.NewNameError(x.Pos(), "name '%s' is not defined", name)
		if hint := errors.FormatSuggestions(errors.SuggestSimilar(name, in.program.Names())); hint != "" {
			err = err.WithHint(hint)
		}
		return nil, err
	}
	if len(x.Args) != len(fn.Params) {
		return nil, errors.NewValueError(x.Pos(), "%s() expected %d arguments, got %d",
			name, len(fn.Params), len(x.Args))
	}
	args := make([]object.Value, len(x.Args))
	for i, arg := range x.Args {
		value, err := in.eval(ec, arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return in.invoke(ec, fn, args, x.Pos())
}

// invoke runs fn with already evaluated arguments in a fresh activation.
func (in *Interpreter) invoke(ec *execContext, fn *ast.FuncDef, args []object.Value, pos token.Position) (object.Value, error) {
	if err := ec.cancelled(); err != nil {
		return nil, err
	}
	if len(args) != len(fn.Params) {
		return nil, errors.NewValueError(pos, "%s() expected %d arguments, got %d",
			fn.Name.Name, len(fn.Params), len(args))
	}
	name := fn.Name.Name
	streak := ec.enter(name)
	if streak >= in.recursionLimit {
		return nil, errors.NewRecursionError(pos, "maximum recursion depth of %d has been reached", in.recursionLimit)
	}
	if len(ec.frames) >= in.maxCallDepth {
		return nil, errors.NewRecursionError(pos, "maximum call depth of %d has been reached", in.maxCallDepth)
	}

	fr := &frame{name: name}
	ec.frames = append(ec.frames, fr)
	depth := len(ec.frames)
	defer func() { ec.frames = ec.frames[:len(ec.frames)-1] }()

	if !in.observer.OnCall(CallEvent{FunctionName: name, ArgCount: len(args), Position: pos, Depth: depth}) {
		return nil, errors.NewValueError(pos, "execution of %s() halted by observer", name)
	}
	in.logger.Debug().Str("function", name).Int("depth", depth).Int("streak", streak).Msg("call")

	vars := make(map[string]object.Value, len(args))
	for i, param := range fn.Params {
		vars[param.Name] = object.Unwrap(args[i])
	}
	in.scopes.enterFunction(vars)
	err := in.execBlock(ec, fn.Body)
	in.scopes.exitFunction()

	in.logger.Debug().Str("function", name).Int("depth", depth).Err(err).Msg("return")
	if !in.observer.OnReturn(ReturnEvent{FunctionName: name, Depth: depth, Err: err}) && err == nil {
		err = errors.NewValueError(pos, "execution of %s() halted by observer", name)
	}
	if err != nil {
		return nil, err
	}
	return fr.result, nil
}
