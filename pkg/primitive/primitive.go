// Package primitive implements the builtin functions bound in the root
// environment: integer arithmetic, the equality predicates and string
// output.
package primitive

import (
	"github.com/filefrog/n7/pkg/environ"
	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/symbol"
)

// Def is a builtin function definition.
type Def struct {
	Name string
	Fn   lisp.LBuiltinFunc
}

var defs = []Def{
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"eq", builtinEq},
	{"eql", builtinEql},
	{"equal", builtinEqual},
	{"prs", builtinPrs},
}

// Definitions returns the builtins in the order they are installed.
func Definitions() []Def {
	return append([]Def(nil), defs...)
}

// Install binds every builtin in env, interning names in table.
func Install(env *environ.Environ, table *symbol.Table) {
	for _, def := range defs {
		env.Put(table.Intern(def.Name), lisp.Builtin(def.Name, def.Fn))
	}
}

func builtinAdd(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	var acc int64
	for it := lisp.NewListIterator(args); it.Next(); {
		acc += lisp.GetFixnum(it.Value())
	}
	return lisp.Fixnum(acc)
}

// builtinSub negates a single operand by subtracting it from zero.
func builtinSub(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	if lisp.IsNil(args) {
		return lisp.Fixnum(0)
	}
	var acc int64
	if !lisp.IsNil(lisp.CDR(args)) {
		acc = lisp.GetFixnum(lisp.CAR(args))
		args = lisp.CDR(args)
	}
	for it := lisp.NewListIterator(args); it.Next(); {
		acc -= lisp.GetFixnum(it.Value())
	}
	return lisp.Fixnum(acc)
}

func builtinMul(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	var acc int64 = 1
	for it := lisp.NewListIterator(args); it.Next(); {
		acc *= lisp.GetFixnum(it.Value())
	}
	return lisp.Fixnum(acc)
}

func builtinDiv(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	if lisp.IsNil(args) {
		fault.Abort(fault.Arity, "/: wrong number of arguments")
	}
	if lisp.IsNil(lisp.CDR(args)) {
		fault.Abort(fault.Arity, "/: no ratio support; ergo, no (/ x) support")
	}
	acc := lisp.GetFixnum(lisp.CAR(args))
	for it := lisp.NewListIterator(lisp.CDR(args)); it.Next(); {
		d := lisp.GetFixnum(it.Value())
		if d == 0 {
			fault.Abortf(fault.DivideByZero, "/: division of %d by zero", acc)
		}
		acc /= d
	}
	return lisp.Fixnum(acc)
}

func builtinEq(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(lisp.Eq(lisp.CAR(args), lisp.CAR(lisp.CDR(args))))
}

func builtinEql(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(lisp.Eql(lisp.CAR(args), lisp.CAR(lisp.CDR(args))))
}

func builtinEqual(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(lisp.Equal(lisp.CAR(args), lisp.CAR(lisp.CDR(args))))
}

// builtinPrs writes the contents of a string to standard output.
func builtinPrs(rt lisp.Runtime, args *lisp.LVal) *lisp.LVal {
	buf := lisp.GetBuffer(lisp.CAR(args))
	_, err := rt.Stdout().Write(buf.Bytes())
	if err != nil {
		fault.Abortf(fault.IO, "prs: %v", err)
	}
	return lisp.True()
}
