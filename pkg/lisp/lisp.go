// Package lisp defines the value representation of the n7 runtime.
//
// Every lisp value is a *LVal.  Values are allocated by the constructors in
// this package and examined through checked accessors; an accessor applied to
// a value of the wrong type signals a fault (see package fault) rather than
// returning garbage.  Nil and True are process-wide singletons, so identity
// (pointer) equality is meaningful for them, and for symbols, which are
// interned by package symbol.
package lisp

import (
	"sync/atomic"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/text"
)

// LType is the type tag of an LVal.
type LType uint8

// Possible LType values
const (
	// LInvalid is the tag of a zero LVal.  No constructor produces it.
	LInvalid LType = iota
	// LNil is the empty list and the false value.
	LNil
	// LTrue is the canonical true value.
	LTrue
	// LFixnum is a bounded integer.
	LFixnum
	// LSymbol is an interned name.
	LSymbol
	// LCons is a pair of values.
	LCons
	// LBuiltin is a native function.
	LBuiltin
	// LString is a mutable byte string.
	LString
	// LStream is a byte stream.
	LStream
	numTypes
)

var ltypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LTrue:    "t",
	LFixnum:  "fixnum",
	LSymbol:  "symbol",
	LCons:    "cons",
	LBuiltin: "builtin",
	LString:  "string",
	LStream:  "stream",
}

func (t LType) String() string {
	if t >= numTypes {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// Runtime is the execution context handed to builtin functions.
type Runtime interface {
	// Stdout returns the stream builtins use for program output.
	Stdout() *stream.Stream
}

// LBuiltinFunc is the native implementation of a builtin.  It receives the
// list of evaluated arguments.
type LBuiltinFunc func(rt Runtime, args *LVal) *LVal

// LVal is a lisp value.  The payload of an LVal is private so that values can
// only be produced by the constructors in this package.
type LVal struct {
	typ    LType
	fixnum int64
	native interface{}
}

// ConsData is the payload of an LCons value.
type ConsData struct {
	CAR *LVal
	CDR *LVal
}

type builtinData struct {
	name string
	fn   LBuiltinFunc
}

var (
	lnil  = &LVal{typ: LNil}
	ltrue = &LVal{typ: LTrue}
)

var allocs uint64

// alloc is the only place LVal memory is obtained.  The Go runtime treats
// heap exhaustion as unrecoverable so there is no failure path to report.
func alloc(t LType) *LVal {
	atomic.AddUint64(&allocs, 1)
	return &LVal{typ: t}
}

// Allocs returns the number of values allocated by the process so far.
func Allocs() uint64 {
	return atomic.LoadUint64(&allocs)
}

// Type returns the type tag of v.
func (v *LVal) Type() LType {
	if v == nil {
		return LInvalid
	}
	return v.typ
}

// Nil returns the nil singleton.
func Nil() *LVal {
	return lnil
}

// True returns the t singleton.
func True() *LVal {
	return ltrue
}

// Bool returns True() if ok and Nil() otherwise.
func Bool(ok bool) *LVal {
	if ok {
		return ltrue
	}
	return lnil
}

// Fixnum returns a newly allocated integer value.
func Fixnum(x int64) *LVal {
	v := alloc(LFixnum)
	v.fixnum = x
	return v
}

// NewSymbol allocates a symbol named name.  NewSymbol is a low-level function
// that bypasses interning; symbols must be obtained through a symbol table
// for identity comparisons to work.
func NewSymbol(name string) *LVal {
	v := alloc(LSymbol)
	v.native = name
	return v
}

// Builtin returns a value wrapping the native function fn.
func Builtin(name string, fn LBuiltinFunc) *LVal {
	if fn == nil {
		fault.Abortf(fault.TypeMismatch, "builtin %s: nil function", name)
	}
	v := alloc(LBuiltin)
	v.native = &builtinData{name, fn}
	return v
}

// String returns a string value holding a copy of s.
func String(s string) *LVal {
	return StringBuffer(text.FromString(s))
}

// StringBuffer returns a string value backed by buf.  The value shares buf
// with the caller.
func StringBuffer(buf *text.Buffer) *LVal {
	if buf == nil {
		buf = text.New()
	}
	v := alloc(LString)
	v.native = buf
	return v
}

// Stream returns a value wrapping s.
func Stream(s *stream.Stream) *LVal {
	if s == nil {
		fault.Abort(fault.TypeMismatch, "stream() called with NULL stream")
	}
	v := alloc(LStream)
	v.native = s
	return v
}

// IsNil returns true if v is the nil singleton.
func IsNil(v *LVal) bool { return v == lnil }

// IsTrue returns true if v is the t singleton.
func IsTrue(v *LVal) bool { return v == ltrue }

// IsFixnum returns true if v is LFixnum.
func IsFixnum(v *LVal) bool { return v.Type() == LFixnum }

// IsSymbol returns true if v is LSymbol.
func IsSymbol(v *LVal) bool { return v.Type() == LSymbol }

// IsCons returns true if v is LCons.
func IsCons(v *LVal) bool { return v.Type() == LCons }

// IsBuiltin returns true if v is LBuiltin.
func IsBuiltin(v *LVal) bool { return v.Type() == LBuiltin }

// IsString returns true if v is LString.
func IsString(v *LVal) bool { return v.Type() == LString }

// IsStream returns true if v is LStream.
func IsStream(v *LVal) bool { return v.Type() == LStream }

func mustBeType(fn string, v *LVal, t LType) {
	if v == nil {
		fault.Abortf(fault.TypeMismatch, "%s() called with NULL value", fn)
	}
	if v.typ != t {
		fault.Abortf(fault.TypeMismatch, "%s() called with non-%v arg: %v", fn, t, v.typ)
	}
}

// GetFixnum returns the integer held by v.
func GetFixnum(v *LVal) int64 {
	mustBeType("fixnum", v, LFixnum)
	return v.fixnum
}

// SymbolName returns the name stored in symbol v.
func SymbolName(v *LVal) string {
	mustBeType("symbol-name", v, LSymbol)
	return v.native.(string)
}

// GetBuffer returns the buffer backing string v.  Changes to the buffer are
// visible through v.
func GetBuffer(v *LVal) *text.Buffer {
	mustBeType("string", v, LString)
	return v.native.(*text.Buffer)
}

// GetStream returns the stream wrapped by v.
func GetStream(v *LVal) *stream.Stream {
	mustBeType("stream", v, LStream)
	return v.native.(*stream.Stream)
}

// BuiltinName returns the name builtin v was created with.
func BuiltinName(v *LVal) string {
	mustBeType("builtin", v, LBuiltin)
	return v.native.(*builtinData).name
}

// GetBuiltin returns the native function wrapped by v.
func GetBuiltin(v *LVal) LBuiltinFunc {
	mustBeType("builtin", v, LBuiltin)
	return v.native.(*builtinData).fn
}

// Call invokes builtin fn with the argument list args.
func Call(rt Runtime, fn *LVal, args *LVal) *LVal {
	mustBeType("apply", fn, LBuiltin)
	ret := fn.native.(*builtinData).fn(rt, args)
	if ret == nil {
		return lnil
	}
	return ret
}
