// Package fault implements the interpreter's fatal-condition channel.
//
// Any fault detected by the runtime (a type mismatch in an accessor,
// malformed syntax, application of a non-callable value, etc) is signaled
// with Abort.  If a recovery point has been registered with Catch the fault
// unwinds to it and Catch returns the fault as an error.  Otherwise the
// process prints a diagnostic and exits.
//
// The channel is process-wide and at most one recovery point is active at a
// time.  Like the rest of the interpreter it is not safe for concurrent use.
package fault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// ExitCode is the process exit status used when a fault is signaled with no
// recovery point registered.
const ExitCode = 42

// Kind labels a fault.  The label does not change unwind semantics, every
// fault unwinds to the same recovery point, but it lets the code that
// registered the point tell faults apart.
type Kind uint

// Possible Kind values
const (
	Unknown Kind = iota
	TypeMismatch
	Syntax
	NotCallable
	Arity
	DivideByZero
	OutOfMemory
	IO
	numKinds
)

var kindStrings = []string{
	Unknown:      "unknown",
	TypeMismatch: "type-mismatch",
	Syntax:       "syntax",
	NotCallable:  "not-callable",
	Arity:        "arity",
	DivideByZero: "divide-by-zero",
	OutOfMemory:  "out-of-memory",
	IO:           "io",
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("%s(%d)", kindStrings[Unknown], uint(k))
	}
	return kindStrings[k]
}

// Fault is a signaled fatal condition.  File and Line locate the code that
// signaled it.
type Fault struct {
	Kind Kind
	Msg  string
	File string
	Line int
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.File == "" {
		return f.Msg
	}
	return fmt.Sprintf("%s:%d: %s", filepath.Base(f.File), f.Line, f.Msg)
}

// Is returns true if err is a Fault (or wraps one) labeled kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == kind
}

type point struct {
	prev *point
}

// current is the active recovery point.
var current *point

// Exit terminates the process when no recovery point is registered.  Tests
// replace it to observe the terminating path.
var Exit = os.Exit

// Stderr receives the termination diagnostic.
var Stderr io.Writer = os.Stderr

// Registered returns true if a recovery point is active.
func Registered() bool {
	return current != nil
}

// Catch registers a recovery point and calls fn.  If fn signals a fault Catch
// clears the point and returns the fault.  The previously active point, if
// any, is restored when Catch returns.  Panics that are not faults are not
// recovered.
func Catch(fn func()) (err error) {
	p := &point{prev: current}
	current = p
	defer func() {
		current = p.prev
		e := recover()
		if e == nil {
			return
		}
		f, ok := e.(*Fault)
		if !ok {
			panic(e)
		}
		err = f
	}()
	fn()
	return nil
}

// Abort signals a fault of the given kind.  Abort never returns.
func Abort(kind Kind, msg string) {
	signal(kind, msg)
}

// Abortf signals a fault with a formatted message.  Abortf never returns.
func Abortf(kind Kind, format string, v ...interface{}) {
	signal(kind, fmt.Sprintf(format, v...))
}

func signal(kind Kind, msg string) {
	f := &Fault{Kind: kind, Msg: msg}
	// skip signal and Abort/Abortf to find the faulting code
	_, f.File, f.Line, _ = runtime.Caller(2)
	if current != nil && kind != OutOfMemory {
		panic(f)
	}
	fmt.Fprintf(Stderr, "ABORT @%s:%d: %s\n", f.File, f.Line, f.Msg)
	fmt.Fprintln(Stderr, "So long, and thanks for all the fish!")
	Exit(ExitCode)
	// Exit only returns when it has been stubbed out.
	panic(f)
}
