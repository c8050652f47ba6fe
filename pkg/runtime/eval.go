package runtime

import (
	"github.com/filefrog/n7/pkg/environ"
	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
)

// Eval evaluates v in env.
//
// Symbols evaluate to their binding in env, or nil when unbound.  A cons is
// a special form when its head is the symbol quote or do, and an application
// otherwise.  Every other value evaluates to itself.
func (r *Runtime) Eval(v *lisp.LVal, env *environ.Environ) *lisp.LVal {
	switch v.Type() {
	case lisp.LSymbol:
		val, _ := env.Get(v)
		return val
	case lisp.LCons:
		return r.evalCons(v, env)
	case lisp.LInvalid:
		fault.Abortf(fault.Unknown, "can't eval %v", v)
	}
	return v
}

func (r *Runtime) evalCons(v *lisp.LVal, env *environ.Environ) *lisp.LVal {
	head := lisp.CAR(v)
	switch head {
	case r.Intern("quote"):
		return lisp.CAR(lisp.CDR(v))
	case r.Intern("do"):
		// the head is evaluated along with the body
		result := lisp.Nil()
		for it := lisp.NewListIterator(v); it.Next(); {
			result = r.Eval(it.Value(), env)
		}
		return result
	}

	// the head names a function, it is looked up and not evaluated
	fn, _ := env.Get(head)
	args := lisp.CDR(v)
	for it := lisp.NewListIterator(args); it.Next(); {
		lisp.SetCAR(it.Cell(), r.Eval(it.Value(), env))
	}
	return r.Apply(fn, args)
}

// Apply calls fn with the evaluated argument list args.  Only builtins can be
// called.
func (r *Runtime) Apply(fn *lisp.LVal, args *lisp.LVal) *lisp.LVal {
	if fn == nil {
		fault.Abort(fault.NotCallable, "fn cannot be NULL")
	}
	if !lisp.IsBuiltin(fn) {
		fault.Abortf(fault.NotCallable, "%v is not a builtin", fn)
	}
	return lisp.Call(r, fn, args)
}
