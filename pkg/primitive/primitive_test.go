package primitive

import (
	"testing"

	"github.com/filefrog/n7/pkg/environ"
	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRuntime struct {
	out *stream.Stream
}

func (rt *testRuntime) Stdout() *stream.Stream { return rt.out }

func fixnums(xs ...int64) *lisp.LVal {
	b := lisp.NewListBuilder()
	for _, x := range xs {
		b.Append(lisp.Fixnum(x))
	}
	return b.List()
}

func call(t *testing.T, fn lisp.LBuiltinFunc, args *lisp.LVal) (v *lisp.LVal, err error) {
	t.Helper()
	rt := &testRuntime{stream.FromString("")}
	err = fault.Catch(func() { v = fn(rt, args) })
	return v, err
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		fn     lisp.LBuiltinFunc
		args   []int64
		result int64
	}{
		{"+", builtinAdd, nil, 0},
		{"+", builtinAdd, []int64{5}, 5},
		{"+", builtinAdd, []int64{1, 2, 3}, 6},
		{"*", builtinMul, nil, 1},
		{"*", builtinMul, []int64{7}, 7},
		{"*", builtinMul, []int64{2, 3, 4}, 24},
		{"-", builtinSub, nil, 0},
		{"-", builtinSub, []int64{45}, -45},
		{"-", builtinSub, []int64{10, 3}, 7},
		{"-", builtinSub, []int64{10, 3, 2}, 5},
		{"/", builtinDiv, []int64{7, 2}, 3},
		{"/", builtinDiv, []int64{-7, 2}, -3},
		{"/", builtinDiv, []int64{100, 5, 3}, 6},
	}
	for i, test := range tests {
		v, err := call(t, test.fn, fixnums(test.args...))
		require.NoError(t, err, "test %d: %s %v", i, test.name, test.args)
		assert.Equal(t, test.result, lisp.GetFixnum(v), "test %d: %s %v", i, test.name, test.args)
	}
}

func TestUnaryMinusMatchesZeroMinus(t *testing.T) {
	for _, x := range []int64{0, 1, -9, 1 << 40} {
		unary, err := call(t, builtinSub, fixnums(x))
		require.NoError(t, err)
		binary, err := call(t, builtinSub, fixnums(0, x))
		require.NoError(t, err)
		assert.True(t, lisp.Eql(unary, binary), "input: %v", x)
	}
}

func TestArithmeticFaults(t *testing.T) {
	tests := []struct {
		fn   lisp.LBuiltinFunc
		args *lisp.LVal
		kind fault.Kind
	}{
		{builtinDiv, fixnums(), fault.Arity},
		{builtinDiv, fixnums(5), fault.Arity},
		{builtinDiv, fixnums(5, 0), fault.DivideByZero},
		{builtinDiv, fixnums(5, 1, 0), fault.DivideByZero},
		{builtinAdd, lisp.List(lisp.Fixnum(1), lisp.String("2")), fault.TypeMismatch},
		{builtinMul, lisp.List(lisp.Nil()), fault.TypeMismatch},
		{builtinSub, lisp.List(lisp.True()), fault.TypeMismatch},
	}
	for i, test := range tests {
		_, err := call(t, test.fn, test.args)
		if assert.Error(t, err, "test %d", i) {
			assert.True(t, fault.Is(err, test.kind), "test %d: %v", i, err)
		}
	}
}

func TestEquality(t *testing.T) {
	table := symbol.NewTable()
	a := table.Intern("a")
	one := lisp.Fixnum(1)
	tests := []struct {
		fn     lisp.LBuiltinFunc
		args   *lisp.LVal
		result bool
	}{
		{builtinEq, lisp.List(a, a), true},
		{builtinEq, lisp.List(one, lisp.Fixnum(1)), false},
		{builtinEq, lisp.List(one, one), true},
		{builtinEq, lisp.Nil(), true},
		{builtinEq, lisp.List(a), false},
		{builtinEql, lisp.List(one, lisp.Fixnum(1)), true},
		{builtinEql, lisp.List(lisp.String("s"), lisp.String("s")), false},
		{builtinEqual, lisp.List(lisp.String("s"), lisp.String("s")), true},
		{builtinEqual, lisp.List(lisp.List(one, a), lisp.List(lisp.Fixnum(1), a)), true},
		{builtinEqual, lisp.List(lisp.List(one), lisp.List(a)), false},
	}
	for i, test := range tests {
		v, err := call(t, test.fn, test.args)
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, test.result, lisp.IsTrue(v), "test %d: %v", i, test.args)
	}
}

func TestPrs(t *testing.T) {
	rt := &testRuntime{stream.FromString("")}
	var v *lisp.LVal
	err := fault.Catch(func() {
		v = builtinPrs(rt, lisp.List(lisp.String("hello\n")))
	})
	require.NoError(t, err)
	assert.True(t, lisp.IsTrue(v))
	assert.Equal(t, "hello\n", rt.out.Contents())

	_, err = call(t, builtinPrs, lisp.List(lisp.Fixnum(1)))
	assert.True(t, fault.Is(err, fault.TypeMismatch))
}

func TestInstall(t *testing.T) {
	table := symbol.NewTable()
	env := environ.New()
	Install(env, table)
	assert.Equal(t, len(Definitions()), env.Len())
	for _, def := range Definitions() {
		v, ok := env.Get(table.Intern(def.Name))
		require.True(t, ok, "name: %v", def.Name)
		assert.Equal(t, def.Name, lisp.BuiltinName(v))
	}
}
