package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refa",
	Short: "Compile regular expressions into minimal DFAs",
	Long: `refa lowers a regular expression to postfix form, builds a Thompson
ε-NFA, determinizes it by subset construction, and contracts it to the
minimal DFA, which it can simulate over input strings or export as JSON
or Graphviz DOT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	acceptColor = color.New(color.FgGreen, color.Bold)
	rejectColor = color.New(color.FgRed, color.Bold)
	errorColor  = color.New(color.FgRed)
	noteColor   = color.New(color.FgYellow)
)

// fail prints the error in red and hands it back to cobra so the process
// exits non-zero.
func fail(err error) error {
	errorColor.Fprintln(os.Stderr, "error:", err)
	return err
}
