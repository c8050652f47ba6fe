package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/filefrog/n7/pkg/runtime"
	"github.com/spf13/cobra"
)

var rootQuiet bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "n7",
	Short: "A minimal lisp runtime",
	Long: `n7 is a minimal lisp runtime for embedding in systems programs.

Programs can be evaluated from files or the command line with the run
command, or interactively with the repl command.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false,
		"Suppress fault diagnostics on stderr")
}

// stderr returns the writer diagnostics go to.
func stderr() io.Writer {
	if rootQuiet {
		return io.Discard
	}
	return os.Stderr
}

func newRuntime(options ...runtime.Option) *runtime.Runtime {
	opts := append([]runtime.Option{runtime.WithStderr(stderr())}, options...)
	rt, err := runtime.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return rt
}
