package interpreter

import "github.com/teksel-io/teksel/token"

// Observer receives function call events. It can be used for tracing and
// profiling without modifying the interpreter.
//
// Observer methods are called synchronously during execution. Returning false
// from either method stops the program with an error.
type Observer interface {
	// OnCall is called after the arguments of a call are evaluated and
	// before the function body runs.
	OnCall(event CallEvent) bool

	// OnReturn is called when a function body finishes, including when it
	// fails.
	OnReturn(event ReturnEvent) bool
}

// CallEvent contains information about a function call.
type CallEvent struct {
	// FunctionName is the name of the function being called.
	FunctionName string

	// ArgCount is the number of arguments passed to the function.
	ArgCount int

	// Position is the location of the call site. It is invalid for the call
	// to main made by Run.
	Position token.Position

	// Depth is the call stack depth after the call.
	Depth int
}

// ReturnEvent contains information about a function return.
type ReturnEvent struct {
	// FunctionName is the name of the function returning.
	FunctionName string

	// Depth is the call stack depth before returning.
	Depth int

	// Err is the error that ended the call, if any.
	Err error
}

// NoOpObserver is an Observer implementation that does nothing. Embed it to
// implement only some of the methods.
type NoOpObserver struct{}

func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

var _ Observer = NoOpObserver{}
