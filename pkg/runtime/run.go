package runtime

import (
	"fmt"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/stream"
)

// Cycle performs one read/eval/print cycle on s under its own recovery
// point.  Cycle returns false when s has no more forms.  A fault raised while
// reading or evaluating is returned as an error.
func (r *Runtime) Cycle(s *stream.Stream) (v *lisp.LVal, more bool, err error) {
	v = lisp.Nil()
	err = fault.Catch(func() {
		form, ok := r.reader.Next(s)
		if !ok {
			return
		}
		more = true
		v = r.Eval(form, r.Globals)
		if r.PrintResults {
			r.print(v)
		}
	})
	if err != nil {
		// a faulted cycle consumed input; the stream may hold more forms
		return lisp.Nil(), true, err
	}
	return v, more, nil
}

func (r *Runtime) print(v *lisp.LVal) {
	b := append(lisp.DumpBytes(v), '\n')
	_, err := r.stdout.Write(b)
	if err != nil {
		fault.Abortf(fault.IO, "print: %v", err)
	}
}

// Run evaluates every form in s in the global environment and returns the
// value of the last one.  Faults are reported on Stderr.  Unless the runtime
// was configured WithStopOnFault(false) Run returns at the first fault.
// Otherwise it continues with the following form and returns the first fault
// once s is exhausted.
func (r *Runtime) Run(s *stream.Stream) (*lisp.LVal, error) {
	var first error
	last := lisp.Nil()
	for {
		v, more, err := r.Cycle(s)
		if err != nil {
			r.report(s, err)
			if r.StopOnFault {
				return lisp.Nil(), err
			}
			if first == nil {
				first = err
			}
			continue
		}
		if !more {
			return last, first
		}
		last = v
	}
}

func (r *Runtime) report(s *stream.Stream, err error) {
	if r.Stderr == nil {
		return
	}
	kind := fault.Unknown
	if f, ok := err.(*fault.Fault); ok {
		kind = f.Kind
	}
	fmt.Fprintf(r.Stderr, "%s: %s fault: %v\n", s.Name(), kind, err)
}

// EvalString evaluates the forms in src and returns the value of the last
// one.  EvalString stops at the first fault and does not print results or
// diagnostics.
func (r *Runtime) EvalString(src string) (*lisp.LVal, error) {
	s := stream.FromString(src)
	last := lisp.Nil()
	for {
		var v *lisp.LVal
		var more bool
		err := fault.Catch(func() {
			var form *lisp.LVal
			form, more = r.reader.Next(s)
			if more {
				v = r.Eval(form, r.Globals)
			}
		})
		if err != nil {
			return lisp.Nil(), err
		}
		if !more {
			return last, nil
		}
		last = v
	}
}

// ReadString parses the first form in src without evaluating it.
func (r *Runtime) ReadString(src string) (*lisp.LVal, error) {
	v := lisp.Nil()
	err := fault.Catch(func() {
		v = r.reader.Read(stream.FromString(src))
	})
	if err != nil {
		return lisp.Nil(), err
	}
	return v, nil
}
