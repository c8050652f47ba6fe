package lisp

import "bytes"

// Eq returns true if a and b are the same value.  Symbols are interned and
// nil/t are singletons, so Eq compares them by name.
func Eq(a, b *LVal) bool {
	return a == b
}

// Eql returns true if a and b are Eq or are fixnums holding the same integer.
func Eql(a, b *LVal) bool {
	if Eq(a, b) {
		return true
	}
	return a.Type() == LFixnum && b.Type() == LFixnum && a.fixnum == b.fixnum
}

// Equal returns true if a and b are Eql or have identical canonical text.
// Equal is structural for lists and strings, but values whose text embeds an
// address (builtins, streams) are only Equal to themselves.
func Equal(a, b *LVal) bool {
	if Eql(a, b) {
		return true
	}
	return bytes.Equal(DumpBytes(a), DumpBytes(b))
}
