// Package repl implements an interactive read/eval/print loop.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/filefrog/n7/pkg/runtime"
	"github.com/filefrog/n7/pkg/stream"
)

// RunRepl reads lines from the terminal and evaluates them in rt until the
// input is closed.  Lines are accumulated until their parentheses balance,
// then every form they contain is evaluated and its value printed.  A fault
// is reported and the loop continues.
func RunRepl(rt *runtime.Runtime, prompt string) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	rt.PrintResults = true
	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if !Complete(line) {
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
			continue
		}
		// faults are reported on rt.Stderr by Run
		_, _ = rt.Run(stream.FromString(string(line)))
	}
	if err != io.EOF {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}

// Complete returns true if src contains no unclosed list or string.  Text in
// comments and strings does not count toward nesting.  A double quote only
// opens a string at the start of a token, as in the reader.
func Complete(src []byte) bool {
	depth := 0
	inString, escaped := false, false
	inToken := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"' && !inToken:
			inString = true
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			inToken = false
		case c == '(':
			depth++
			inToken = false
		case c == ')':
			depth--
			inToken = false
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\'' || c == '`':
			inToken = false
		default:
			inToken = true
		}
	}
	return depth <= 0 && !inString
}
