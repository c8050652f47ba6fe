package lisp

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLTypeString(t *testing.T) {
	assert.Equal(t, "fixnum", LFixnum.String())
	assert.Equal(t, "cons", LCons.String())
	assert.Equal(t, "INVALID", LType(200).String())
}

func TestSingletons(t *testing.T) {
	require.Equal(t, LNil, Nil().Type())
	require.Equal(t, LTrue, True().Type())
	assert.True(t, Nil() == Nil())
	assert.True(t, True() == True())
	assert.True(t, IsNil(Bool(false)))
	assert.True(t, IsTrue(Bool(true)))

	var v *LVal
	assert.Equal(t, LInvalid, v.Type())
}

func TestFixnum(t *testing.T) {
	for _, x := range []int64{
		0, 1, -1, 256, -255, 100000, math.MaxInt64, math.MinInt64,
	} {
		v := Fixnum(x)
		require.True(t, IsFixnum(v), "input: %v", x)
		assert.Equal(t, x, GetFixnum(v), "input: %v", x)
		assert.Equal(t, strconv.FormatInt(x, 10), v.String(), "input: %v", x)
	}
}

func TestString(t *testing.T) {
	for _, x := range []string{
		"", "hello", "t", `with "quotes"`,
	} {
		v := String(x)
		require.True(t, IsString(v), "input: %v", x)
		assert.Equal(t, x, GetBuffer(v).String(), "input: %v", x)
		assert.Equal(t, `"`+x+`"`, v.String(), "input: %v", x)
	}

	buf := text.FromString("abc")
	v := StringBuffer(buf)
	buf.AppendString("def")
	assert.Equal(t, `"abcdef"`, v.String())
	assert.False(t, String("x") == String("x"))
}

func TestAccessorTypeMismatch(t *testing.T) {
	for _, fn := range []func(){
		func() { GetFixnum(String("1")) },
		func() { GetFixnum(nil) },
		func() { SymbolName(Fixnum(1)) },
		func() { GetBuffer(Nil()) },
		func() { GetStream(True()) },
		func() { CAR(Fixnum(3)) },
		func() { CDR(String("")) },
		func() { SetCAR(Nil(), Fixnum(1)) },
		func() { Cons(nil, Nil()) },
		func() { Call(nil, Fixnum(1), Nil()) },
	} {
		err := fault.Catch(fn)
		if assert.Error(t, err) {
			assert.True(t, fault.Is(err, fault.TypeMismatch), "error: %v", err)
		}
	}
}

func TestCons(t *testing.T) {
	one, two := Fixnum(1), Fixnum(2)
	c := Cons(one, two)
	assert.True(t, IsCons(c))
	assert.True(t, CAR(c) == one)
	assert.True(t, CDR(c) == two)
	assert.True(t, IsNil(CAR(Nil())))
	assert.True(t, IsNil(CDR(Nil())))

	alias := c
	SetCAR(c, two)
	SetCDR(c, Nil())
	assert.True(t, CAR(alias) == two)
	assert.True(t, IsNil(CDR(alias)))
}

func TestList(t *testing.T) {
	lis := List(Fixnum(1), Fixnum(2), Fixnum(3))
	n, ok := Len(lis)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, "(1 2 3)", lis.String())
	assert.Equal(t, "(3 2 1)", Reverse(lis).String())
	assert.Equal(t, "(1 2 3)", lis.String())
	assert.Len(t, Slice(lis), 3)
	assert.True(t, IsNil(List()))

	n, ok = Len(Cons(Fixnum(1), Fixnum(2)))
	assert.False(t, ok)
	assert.Equal(t, 1, n)

	err := fault.Catch(func() { Reverse(Cons(Fixnum(1), Fixnum(2))) })
	assert.True(t, fault.Is(err, fault.TypeMismatch))
}

func TestListBuilder(t *testing.T) {
	b := NewListBuilder()
	assert.True(t, IsNil(b.List()))
	b.Append(Fixnum(1))
	b.Append(Fixnum(2), Fixnum(3))
	assert.Equal(t, "(1 2 3)", b.List().String())
	b.Terminate(Fixnum(4))
	assert.Equal(t, "(1 2 3 . 4)", b.List().String())

	err := fault.Catch(func() { NewListBuilder().Terminate(Nil()) })
	assert.Error(t, err)
}

func TestListIterator(t *testing.T) {
	lis := List(Fixnum(1), Fixnum(2))
	it := NewListIterator(lis)
	require.True(t, it.Next())
	assert.Equal(t, int64(1), GetFixnum(it.Value()))
	SetCAR(it.Cell(), Fixnum(10))
	require.True(t, it.Next())
	assert.True(t, IsNil(it.Rest()))
	assert.False(t, it.Next())
	assert.Equal(t, "(10 2)", lis.String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    *LVal
		text string
	}{
		{Nil(), "nil"},
		{True(), "t"},
		{Fixnum(-42), "-42"},
		{NewSymbol("foo"), "foo"},
		{String("a\nb"), "\"a\nb\""},
		{List(), "nil"},
		{List(Fixnum(1)), "(1)"},
		{Cons(Fixnum(1), Fixnum(2)), "(1 . 2)"},
		{List(Fixnum(1), List(NewSymbol("x"), Nil()), True()), "(1 (x nil) t)"},
		{Cons(Nil(), Nil()), "(nil)"},
	}
	for i, test := range tests {
		assert.Equal(t, test.text, test.v.String(), "test %d", i)
		assert.Equal(t, test.text, string(DumpBytes(test.v)), "test %d", i)
		assert.Equal(t, test.text, GetBuffer(Dump(test.v)).String(), "test %d", i)
	}
}

func TestFormatOpaque(t *testing.T) {
	fn := Builtin("car", func(rt Runtime, args *LVal) *LVal { return CAR(CAR(args)) })
	assert.Regexp(t, `^<#:builtin:car:0x[0-9a-f]+:#>$`, fn.String())
	assert.Equal(t, "car", BuiltinName(fn))

	s := Stream(stream.FromString(""))
	assert.Regexp(t, `^<#:stream:0x[0-9a-f]+:#>$`, s.String())

	assert.Regexp(t, `^<#:UNKNOWN:0:0x[0-9a-f]+:#>$`, (&LVal{}).String())
}

func TestDumpBytesOwned(t *testing.T) {
	v := List(Fixnum(1))
	b := DumpBytes(v)
	b[1] = '9'
	assert.Equal(t, "(1)", string(DumpBytes(v)))
}

func TestEquality(t *testing.T) {
	sym := NewSymbol("a")
	one, also := Fixnum(1), Fixnum(1)

	assert.True(t, Eq(sym, sym))
	assert.True(t, Eq(Nil(), Nil()))
	assert.False(t, Eq(one, also))
	assert.True(t, Eql(one, also))
	assert.False(t, Eql(one, Fixnum(2)))
	assert.False(t, Eql(String("x"), String("x")))
	assert.True(t, Equal(String("x"), String("x")))
	assert.False(t, Equal(String("x"), String("y")))
	assert.True(t, Equal(List(one, sym), List(also, sym)))
	assert.False(t, Equal(List(one), Cons(one, one)))
	assert.False(t, Equal(String("1"), one))

	f := func(rt Runtime, args *LVal) *LVal { return nil }
	assert.False(t, Equal(Builtin("f", f), Builtin("f", f)))
}

type testRuntime struct{ out *stream.Stream }

func (rt testRuntime) Stdout() *stream.Stream { return rt.out }

func TestCall(t *testing.T) {
	out := stream.FromString("")
	rt := testRuntime{out}
	echo := Builtin("echo", func(rt Runtime, args *LVal) *LVal {
		_, _ = rt.Stdout().WriteString(strings.ToUpper(SymbolName(CAR(args))))
		return nil
	})
	ret := Call(rt, echo, List(NewSymbol("hi")))
	assert.True(t, IsNil(ret))
	assert.Equal(t, "HI", out.Contents())
	assert.NotNil(t, GetBuiltin(echo))
	assert.True(t, Allocs() > 0)
}
