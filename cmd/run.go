package cmd

import (
	"fmt"
	"os"

	"github.com/filefrog/n7/pkg/runtime"
	"github.com/filefrog/n7/pkg/stream"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runKeepGoing  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Evaluate each FILE in order, or each argument as source text when -e is
given.  Values are printed when -p is given.  A fault stops the run unless
-k is given, in which case it is reported and evaluation continues with the
next expression.  The exit status is non-zero if any expression faulted.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt := newRuntime(
			runtime.WithPrintResults(runPrint),
			runtime.WithStopOnFault(!runKeepGoing),
		)
		failed := false
		for _, arg := range args {
			s, err := runOpenSource(arg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			_, err = rt.Run(s)
			s.Close()
			if err != nil {
				failed = true
				if !runKeepGoing {
					break
				}
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func runOpenSource(arg string) (*stream.Stream, error) {
	if runExpression {
		return stream.FromString(arg), nil
	}
	s, err := stream.Open(arg, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false,
		"Continue with the next expression after a fault")
}
