// Package runtime evaluates lisp programs.
//
// A Runtime owns a symbol table and a root environment populated with the
// builtins from package primitive.  Programs are evaluated by walking their
// value tree directly; the only special forms are quote and do.
package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/filefrog/n7/pkg/environ"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/primitive"
	"github.com/filefrog/n7/pkg/reader"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/symbol"
)

// Option is a function that configures a new Runtime.
type Option func(*Runtime) error

// WithStdout makes builtins write program output to w instead of the default
// os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(r *Runtime) error {
		if w == nil {
			return fmt.Errorf("nil stdout")
		}
		if s, ok := w.(*stream.Stream); ok {
			r.stdout = s
			return nil
		}
		r.stdout = stream.ToWriter("stdout", w)
		return nil
	}
}

// WithStderr redirects a runtime's diagnostic output to w instead of the
// default os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Runtime) error {
		if w == nil {
			return fmt.Errorf("nil stderr")
		}
		r.Stderr = w
		return nil
	}
}

// WithSymbols makes the runtime intern symbols in table instead of
// symbol.DefaultGlobalTable.
func WithSymbols(table *symbol.Table) Option {
	return func(r *Runtime) error {
		if table == nil {
			return fmt.Errorf("nil symbol table")
		}
		r.Symbols = table
		return nil
	}
}

// WithStopOnFault controls whether Run stops at the first fault (the
// default) or reports it and continues with the next form.
func WithStopOnFault(stop bool) Option {
	return func(r *Runtime) error {
		r.StopOnFault = stop
		return nil
	}
}

// WithPrintResults makes Run print the value of each top-level form to the
// runtime's stdout.
func WithPrintResults(print bool) Option {
	return func(r *Runtime) error {
		r.PrintResults = print
		return nil
	}
}

// Runtime manages lisp execution.  A Runtime is not safe for concurrent use.
type Runtime struct {
	Symbols      *symbol.Table
	Globals      *environ.Environ
	Stderr       io.Writer
	StopOnFault  bool
	PrintResults bool
	stdout       *stream.Stream
	reader       *reader.Reader
}

var _ lisp.Runtime = (*Runtime)(nil)

// New initializes and returns a new Runtime with the provided configuration
// options.  If any error is encountered it will be returned with a nil
// runtime.
func New(options ...Option) (*Runtime, error) {
	r := &Runtime{
		Symbols:     symbol.DefaultGlobalTable,
		Globals:     environ.New(),
		Stderr:      os.Stderr,
		StopOnFault: true,
	}
	for _, fn := range options {
		err := fn(r)
		if err != nil {
			return nil, err
		}
	}
	if r.stdout == nil {
		r.stdout = stream.FromFile(os.Stdout)
	}
	r.reader = reader.New(r.Symbols)
	primitive.Install(r.Globals, r.Symbols)
	return r, nil
}

// Stdout implements lisp.Runtime.
func (r *Runtime) Stdout() *stream.Stream {
	return r.stdout
}

// Reader returns the reader used to parse source for r.
func (r *Runtime) Reader() *reader.Reader {
	return r.reader
}

// Intern interns name in the runtime's symbol table.
func (r *Runtime) Intern(name string) *lisp.LVal {
	return r.Symbols.Intern(name)
}
