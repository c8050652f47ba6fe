package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/filefrog/n7/pkg/lisp"
	"github.com/filefrog/n7/pkg/runtime"
	"github.com/spf13/cobra"
)

var symbolsTable bool

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the bindings of the root environment",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printSymbols(os.Stdout, newRuntime(), symbolsTable); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func printSymbols(w io.Writer, rt *runtime.Runtime, table bool) error {
	if table {
		return rt.Symbols.Dump(w)
	}
	var err error
	rt.Globals.Each(func(sym, v *lisp.LVal) {
		if err == nil {
			_, err = fmt.Fprintf(w, "%s\t%v\n", lisp.SymbolName(sym), v)
		}
	})
	return err
}

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().BoolVar(&symbolsTable, "table", false,
		"Dump the symbol table buckets instead of the bindings")
}
