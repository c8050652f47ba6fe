package lisp

import (
	"github.com/filefrog/n7/pkg/text"
)

// Format appends the canonical text of v to buf.  Format never fails; values
// without a readable representation are written as diagnostic tags of the
// form <#:...:#>.
//
// String contents are written verbatim between double quotes.  Embedded
// quotes and backslashes are not escaped, so the output of Format is not
// always readable by the reader.
func Format(buf *text.Buffer, v *LVal) {
	switch v.Type() {
	case LNil:
		buf.AppendString("nil")
	case LTrue:
		buf.AppendString("t")
	case LFixnum:
		buf.Appendf("%d", v.fixnum)
	case LSymbol:
		buf.AppendString(v.native.(string))
	case LString:
		buf.AppendByte('"')
		buf.Append(v.native.(*text.Buffer).Bytes())
		buf.AppendByte('"')
	case LCons:
		formatCons(buf, v)
	case LBuiltin:
		buf.Appendf("<#:builtin:%s:%p:#>", v.native.(*builtinData).name, v)
	case LStream:
		buf.Appendf("<#:stream:%p:#>", v)
	default:
		buf.Appendf("<#:UNKNOWN:%x:%p:#>", uint8(v.Type()), v)
	}
}

func formatCons(buf *text.Buffer, v *LVal) {
	buf.AppendByte('(')
	for {
		cell := v.native.(*ConsData)
		Format(buf, cell.CAR)
		if cell.CDR == lnil {
			break
		}
		if cell.CDR.Type() != LCons {
			buf.AppendString(" . ")
			Format(buf, cell.CDR)
			break
		}
		buf.AppendByte(' ')
		v = cell.CDR
	}
	buf.AppendByte(')')
}

// Dump returns a String value holding the canonical text of v.
func Dump(v *LVal) *LVal {
	buf := text.New()
	Format(buf, v)
	return StringBuffer(buf)
}

// DumpBytes returns the canonical text of v in a newly allocated slice owned
// by the caller.
func DumpBytes(v *LVal) []byte {
	buf := text.New()
	Format(buf, v)
	return buf.Bytes()
}

// String implements fmt.Stringer.
func (v *LVal) String() string {
	buf := text.New()
	Format(buf, v)
	return buf.String()
}
