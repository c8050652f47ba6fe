// Package symbol interns symbol names.
//
// A Table maps each case-insensitive name to exactly one *lisp.LVal so that
// symbols can be compared by identity.  The names nil and t are never stored
// in a table; they intern to the lisp.Nil and lisp.True singletons.
package symbol

import (
	"fmt"
	"io"

	"github.com/filefrog/n7/pkg/lisp"
)

// NumBuckets is the number of hash buckets in a Table.
const NumBuckets = 211

// DefaultGlobalTable is the process-wide symbol table.  Runtimes use it unless
// configured with a table of their own.
var DefaultGlobalTable = NewTable()

// Intern interns name in DefaultGlobalTable.
func Intern(name string) *lisp.LVal {
	return DefaultGlobalTable.Intern(name)
}

// Init discards every symbol in DefaultGlobalTable.  Symbols interned before
// Init are no longer identical to symbols interned after it.
func Init() {
	DefaultGlobalTable.Reset()
}

// Hash returns the bucket index of name in a table with lim buckets.  Only
// the first byte of the name is significant.
func Hash(name string, lim int) int {
	if name == "" || lim <= 0 {
		return 0
	}
	return int(lower(name[0])) % lim
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// lowerASCII folds the ASCII letters in name.  Other bytes, including
// non-ASCII and invalid UTF-8, are kept as they are.
func lowerASCII(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c != lower(c) {
			b := []byte(name)
			for j := i; j < len(b); j++ {
				b[j] = lower(b[j])
			}
			return string(b)
		}
	}
	return name
}

// Table is a fixed-size chained hash table of symbols.  A Table is not safe
// for concurrent use.
type Table struct {
	buckets [NumBuckets][]*lisp.LVal
	n       int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of symbols interned in the table.
func (t *Table) Len() int {
	return t.n
}

// Reset removes all symbols from the table.
func (t *Table) Reset() {
	*t = Table{}
}

// Intern returns the unique symbol named name, creating it if necessary.
// Names are case-insensitive in ASCII letters only and stored with those
// letters lowercase.
func (t *Table) Intern(name string) *lisp.LVal {
	name = lowerASCII(name)
	if v, ok := constant(name); ok {
		return v
	}
	h := Hash(name, NumBuckets)
	if v := t.scan(h, name); v != nil {
		return v
	}
	v := lisp.NewSymbol(name)
	t.buckets[h] = append(t.buckets[h], v)
	t.n++
	return v
}

// Peek returns the symbol named name without interning it.  Peek returns
// false if name has not been interned.
func (t *Table) Peek(name string) (*lisp.LVal, bool) {
	name = lowerASCII(name)
	if v, ok := constant(name); ok {
		return v, true
	}
	v := t.scan(Hash(name, NumBuckets), name)
	return v, v != nil
}

// scan expects name to be folded already.
func (t *Table) scan(h int, name string) *lisp.LVal {
	for _, v := range t.buckets[h] {
		if lisp.SymbolName(v) == name {
			return v
		}
	}
	return nil
}

func constant(name string) (*lisp.LVal, bool) {
	switch name {
	case "nil":
		return lisp.Nil(), true
	case "t":
		return lisp.True(), true
	}
	return nil, false
}

// Dump writes the contents of every non-empty bucket to w, one line per
// bucket.
func (t *Table) Dump(w io.Writer) error {
	for i, b := range t.buckets {
		if len(b) == 0 {
			continue
		}
		_, err := fmt.Fprintf(w, "[%03d]", i)
		if err != nil {
			return err
		}
		for _, v := range b {
			_, err = fmt.Fprintf(w, " %s@%p", lisp.SymbolName(v), v)
			if err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
	}
	return nil
}
