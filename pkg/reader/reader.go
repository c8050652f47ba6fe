// Package reader parses lisp source text into values.
//
// The grammar is small: unsigned integers, symbols, double-quoted strings,
// proper and dotted lists, the 'x quote shorthand and ;-comments.  Malformed
// input signals a fault.Syntax fault.
package reader

import (
	"strings"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/symbol"
	"github.com/filefrog/n7/pkg/text"
)

// marker distinguishes reader-internal tokens from values.  A marker never
// escapes the package.
type marker uint8

const (
	value marker = iota
	endOfList
	dotMarker
	endOfStream
)

type item struct {
	mark marker
	v    *lisp.LVal
}

// Reader reads values from streams, interning symbols in its table.
type Reader struct {
	symbols *symbol.Table
}

// New returns a Reader that interns symbols in table.  If table is nil the
// Reader uses symbol.DefaultGlobalTable.
func New(table *symbol.Table) *Reader {
	if table == nil {
		table = symbol.DefaultGlobalTable
	}
	return &Reader{symbols: table}
}

// Read parses one value from s using symbol.DefaultGlobalTable.
func Read(s *stream.Stream) *lisp.LVal {
	return New(nil).Read(s)
}

// Read parses exactly one value from s.  Read returns nil when s contains no
// further tokens.
func (r *Reader) Read(s *stream.Stream) *lisp.LVal {
	v, _ := r.Next(s)
	return v
}

// Next parses one value from s.  Next returns false, and nil, when s contains
// no further tokens.  Unlike Read it can tell an exhausted stream from the
// literal nil.
func (r *Reader) Next(s *stream.Stream) (*lisp.LVal, bool) {
	it := r.read(s)
	switch it.mark {
	case endOfStream:
		return lisp.Nil(), false
	case endOfList:
		fault.Abort(fault.Syntax, "unexpected )")
	case dotMarker:
		fault.Abort(fault.Syntax, "unexpected . outside of a list")
	}
	return it.v, true
}

// ReadAll parses values from s until it is exhausted.
func (r *Reader) ReadAll(s *stream.Stream) []*lisp.LVal {
	var vs []*lisp.LVal
	for {
		v, ok := r.Next(s)
		if !ok {
			return vs
		}
		vs = append(vs, v)
	}
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// isPunct reports whether c is a single character token.
func isPunct(c int) bool {
	return c == '(' || c == ')' || c == '\'' || c == '`'
}

func isDelim(c int) bool {
	return c == stream.EOF || isSpace(c) || isPunct(c) || c == ';'
}

func skipComment(s *stream.Stream) {
	for c := s.Getc(); c != stream.EOF && c != '\n'; c = s.Getc() {
	}
}

func (r *Reader) read(s *stream.Stream) item {
	for {
		c := s.Getc()
		switch {
		case c == stream.EOF:
			return item{mark: endOfStream}
		case isSpace(c):
		case c == ';':
			skipComment(s)
		case '0' <= c && c <= '9':
			s.Ungetc(c)
			return item{v: readNumber(nextToken(s))}
		case c == '(':
			return item{v: r.readList(s)}
		case c == ')':
			return item{mark: endOfList}
		case c == '.':
			if isDelim(peek(s)) {
				return item{mark: dotMarker}
			}
			return item{v: r.symbols.Intern("." + nextToken(s))}
		case c == '"':
			return item{v: readString(s)}
		case c == '\'':
			return item{v: r.readQuote(s)}
		default:
			s.Ungetc(c)
			return item{v: r.symbols.Intern(nextToken(s))}
		}
	}
}

func peek(s *stream.Stream) int {
	c := s.Getc()
	s.Ungetc(c)
	return c
}

// nextToken accumulates a maximal run of non-delimiter characters.  A
// punctuation character forms a token by itself when nothing has
// accumulated.
func nextToken(s *stream.Stream) string {
	var tok strings.Builder
	for {
		c := s.Getc()
		switch {
		case c == stream.EOF:
			return tok.String()
		case isSpace(c):
			if tok.Len() > 0 {
				return tok.String()
			}
		case c == ';':
			skipComment(s)
			if tok.Len() > 0 {
				return tok.String()
			}
		case isPunct(c):
			if tok.Len() > 0 {
				s.Ungetc(c)
			} else {
				tok.WriteByte(byte(c))
			}
			return tok.String()
		default:
			tok.WriteByte(byte(c))
		}
	}
}

// readNumber folds the bytes of tok in base 10.  Overflow wraps.  The token
// is not validated; every byte contributes its offset from '0'.
func readNumber(tok string) *lisp.LVal {
	var x int64
	for i := 0; i < len(tok); i++ {
		x = x*10 + int64(tok[i]) - '0'
	}
	return lisp.Fixnum(x)
}

// readString reads the remainder of a string literal.  The opening quote has
// been consumed.
func readString(s *stream.Stream) *lisp.LVal {
	buf := text.New()
	for {
		c := s.Getc()
		switch c {
		case stream.EOF, '"':
			return lisp.StringBuffer(buf)
		case '\\':
			c = s.Getc()
			switch c {
			case stream.EOF:
				return lisp.StringBuffer(buf)
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			}
		}
		buf.AppendByte(byte(c))
	}
}

func (r *Reader) readQuote(s *stream.Stream) *lisp.LVal {
	it := r.read(s)
	switch it.mark {
	case endOfStream:
		fault.Abort(fault.Syntax, "unexpected end of stream after '")
	case endOfList, dotMarker:
		fault.Abort(fault.Syntax, "nothing to quote")
	}
	return lisp.List(r.symbols.Intern("quote"), it.v)
}

// readList reads the remainder of a list.  The opening paren has been
// consumed.  A dot must be preceded by exactly one element and followed by
// exactly one element before the closing paren.
func (r *Reader) readList(s *stream.Stream) *lisp.LVal {
	b := lisp.NewListBuilder()
	n := 0
	for {
		it := r.read(s)
		switch it.mark {
		case endOfStream:
			fault.Abort(fault.Syntax, "unexpected end of stream in list")
		case endOfList:
			return b.List()
		case dotMarker:
			if n == 0 {
				fault.Abort(fault.Syntax, "invalid form starting with (.")
			}
			if n != 1 {
				fault.Abort(fault.Syntax, "abuse of dotted notation!")
			}
			rest := r.read(s)
			if rest.mark != value || r.read(s).mark != endOfList {
				fault.Abort(fault.Syntax, "abuse of dotted notation!")
			}
			b.Terminate(rest.v)
			return b.List()
		default:
			b.Append(it.v)
			n++
		}
	}
}
