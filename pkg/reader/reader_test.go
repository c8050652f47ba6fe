package reader

import (
	"math"
	"strconv"
	"testing"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSource(t *testing.T, r *Reader, src string) (v *lisp.LVal, err error) {
	t.Helper()
	err = fault.Catch(func() {
		v = r.Read(stream.FromString(src))
	})
	return v, err
}

func TestRead(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"", "nil"},
		{"   \t\r\n ", "nil"},
		{"; just a comment", "nil"},
		{"; one\n; two\n", "nil"},
		{"42", "42"},
		{"  007 ", "7"},
		{"foo", "foo"},
		{"FOO", "foo"},
		{"nil", "nil"},
		{"T", "t"},
		{"()", "nil"},
		{"(1 2 3)", "(1 2 3)"},
		{"(1 . 2)", "(1 . 2)"},
		{"(a . (b c))", "(a b c)"},
		{"(a (b (c)) d)", "(a (b (c)) d)"},
		{"( 1\n2 ; comment\n 3 )", "(1 2 3)"},
		{"(foo(bar)baz)", "(foo (bar) baz)"},
		{"'x", "(quote x)"},
		{"'(1 2)", "(quote (1 2))"},
		{"(a 'b)", "(a (quote b))"},
		{"''a", "(quote (quote a))"},
		{`"hello"`, `"hello"`},
		{`"a\"b"`, `"a"b"`},
		{`"tab\there"`, "\"tab\there\""},
		{`"\n\r\\\q"`, "\"\n\r\\q\""},
		{`"unterminated`, `"unterminated"`},
		{"+", "+"},
		{"a;comment", "a"},
		{".foo", ".foo"},
		{"(a `b)", "(a ` b)"},
		{"1a", "59"},
		{`a"b`, `a"b`},
	}
	for i, test := range tests {
		v, err := readSource(t, New(symbol.NewTable()), test.src)
		if !assert.NoError(t, err, "test %d: %q", i, test.src) {
			continue
		}
		assert.Equal(t, test.text, v.String(), "test %d: %q", i, test.src)
	}
}

func TestReadFaults(t *testing.T) {
	for i, src := range []string{
		"(.)",
		"(. 1 2)",
		"(1 2 . 3)",
		"(1 . 2 3)",
		"(1 .)",
		"(1 2",
		"(",
		"'",
		"(')",
		")",
		". 1",
	} {
		_, err := readSource(t, New(symbol.NewTable()), src)
		if assert.Error(t, err, "test %d: %q", i, src) {
			assert.True(t, fault.Is(err, fault.Syntax), "test %d: %v", i, err)
		}
	}
}

func TestReadInterns(t *testing.T) {
	table := symbol.NewTable()
	r := New(table)
	a, err := readSource(t, r, "Alpha")
	require.NoError(t, err)
	b, err := readSource(t, r, "alpha")
	require.NoError(t, err)
	assert.True(t, a == b)
	assert.True(t, a == table.Intern("ALPHA"))

	q, err := readSource(t, r, "'x")
	require.NoError(t, err)
	assert.True(t, lisp.CAR(q) == table.Intern("quote"))
}

func TestReadNonASCIISymbols(t *testing.T) {
	table := symbol.NewTable()
	r := New(table)
	a, err := readSource(t, r, "x\xfe")
	require.NoError(t, err)
	b, err := readSource(t, r, "X\xff")
	require.NoError(t, err)
	assert.False(t, a == b)
	assert.Equal(t, "x\xfe", a.String())
	assert.Equal(t, "x\xff", b.String())

	c, err := readSource(t, r, "Ärger")
	require.NoError(t, err)
	assert.Equal(t, "Ärger", c.String())
	assert.False(t, c == table.Intern("ärger"))
}

func TestReadSequence(t *testing.T) {
	r := New(symbol.NewTable())
	s := stream.FromString("1 (2) nil three")
	var vs []*lisp.LVal
	err := fault.Catch(func() { vs = r.ReadAll(s) })
	require.NoError(t, err)
	require.Len(t, vs, 4)
	assert.Equal(t, "1", vs[0].String())
	assert.Equal(t, "(2)", vs[1].String())
	assert.True(t, lisp.IsNil(vs[2]))
	assert.Equal(t, "three", vs[3].String())

	v, ok := r.Next(s)
	assert.False(t, ok)
	assert.True(t, lisp.IsNil(v))
}

func TestFixnumRoundTrip(t *testing.T) {
	r := New(symbol.NewTable())
	for _, x := range []int64{0, 1, 9, 10, 12345, math.MaxInt64} {
		text := lisp.Fixnum(x).String()
		assert.Equal(t, strconv.FormatInt(x, 10), text)
		v, err := readSource(t, r, text)
		require.NoError(t, err)
		assert.True(t, lisp.Eql(lisp.Fixnum(x), v), "input: %v", x)
	}
}

func TestReadDefaultTable(t *testing.T) {
	symbol.Init()
	defer symbol.Init()
	var v *lisp.LVal
	err := fault.Catch(func() { v = Read(stream.FromString("sym")) })
	require.NoError(t, err)
	assert.True(t, v == symbol.Intern("SYM"))
}
