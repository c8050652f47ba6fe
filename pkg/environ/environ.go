// Package environ implements variable environments.
//
// An Environ is an association list of (symbol . value) pairs held in an
// ordinary lisp list, most recent binding first.  Because the pairs are cons
// cells they may be shared with program values, and an update through one
// holder is visible to all of them.
package environ

import (
	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
)

// Environ is an ordered set of variable bindings.  Environ is not safe for
// concurrent use.
type Environ struct {
	alist *lisp.LVal
}

// New returns an empty Environ.
func New() *Environ {
	return &Environ{alist: lisp.Nil()}
}

// Len returns the number of bindings.
func (env *Environ) Len() int {
	n, _ := lisp.Len(env.alist)
	return n
}

// LVal returns the association list backing env.  The list shares structure
// with env.
func (env *Environ) LVal() *lisp.LVal {
	return env.alist
}

func (env *Environ) find(sym *lisp.LVal) *lisp.LVal {
	for it := lisp.NewListIterator(env.alist); it.Next(); {
		pair := it.Value()
		if lisp.CAR(pair) == sym {
			return pair
		}
	}
	return nil
}

// Get returns the value bound to sym.  Symbols are matched by identity,
// newest binding first.  Get returns false, and nil, if sym is not bound.
func (env *Environ) Get(sym *lisp.LVal) (*lisp.LVal, bool) {
	pair := env.find(sym)
	if pair == nil {
		return lisp.Nil(), false
	}
	return lisp.CDR(pair), true
}

// Put binds sym to v.  If sym is already bound the existing pair is updated
// in place, otherwise a new binding is added to the front of env.
func (env *Environ) Put(sym, v *lisp.LVal) {
	if !lisp.IsSymbol(sym) {
		fault.Abortf(fault.TypeMismatch, "cannot bind non-symbol: %v", sym)
	}
	if pair := env.find(sym); pair != nil {
		lisp.SetCDR(pair, v)
		return
	}
	env.alist = lisp.Cons(lisp.Cons(sym, v), env.alist)
}

// Each calls fn for every binding, newest first.
func (env *Environ) Each(fn func(sym, v *lisp.LVal)) {
	for it := lisp.NewListIterator(env.alist); it.Next(); {
		pair := it.Value()
		fn(lisp.CAR(pair), lisp.CDR(pair))
	}
}
