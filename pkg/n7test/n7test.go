// Package n7test runs sequences of lisp expressions against fresh runtimes
// and compares the printed results.
package n7test

import (
	"testing"

	"github.com/filefrog/n7/pkg/fault"
	"github.com/filefrog/n7/pkg/runtime"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/filefrog/n7/pkg/symbol"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a runtime.Runtime.  When an expression faults its result is
// the fault kind followed by " fault".  Output, when not empty, is compared
// with what the expression wrote to stdout.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result
	Output string // expected stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner is a test runner.
type Runner struct {
	// Options are applied to every runtime created by the Runner, after the
	// defaults.
	Options []runtime.Option
}

// NewRuntime returns a runtime with its own symbol table that writes program
// output to out.
func (r *Runner) NewRuntime(out *stream.Stream) (*runtime.Runtime, error) {
	opts := []runtime.Option{
		runtime.WithSymbols(symbol.NewTable()),
		runtime.WithStdout(out),
	}
	return runtime.New(append(opts, r.Options...)...)
}

// RunTestSuite runs each TestSequence in tests on isolated runtimes.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		out := stream.FromString("")
		rt, err := r.NewRuntime(out)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			before := len(out.Contents())
			result := Result(rt, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			output := out.Contents()[before:]
			if expr.Output != "" && output != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, output)
			}
		}
	}
}

// RunTestSuite runs tests with a default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	(&Runner{}).RunTestSuite(t, tests)
}

// Result evaluates src in rt and returns the printed value of its last form,
// or a description of the fault it raised.
func Result(rt *runtime.Runtime, src string) string {
	v, err := rt.EvalString(src)
	if err != nil {
		if f, ok := err.(*fault.Fault); ok {
			return f.Kind.String() + " fault"
		}
		return err.Error()
	}
	return v.String()
}
