package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/simulate"
)

var (
	simulateNoMinimize bool
	simulateShowPath   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <regex> <input>...",
	Short: "Compile a regex and run it over input strings",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := compilePattern(args[0], !simulateNoMinimize)
		if err != nil {
			return fail(err)
		}
		d := c.result()

		for _, input := range args[1:] {
			path, accepted, err := simulate.Run(d, input)
			if err != nil {
				return fail(err)
			}
			verdict := rejectColor.Sprint("REJECT")
			if accepted {
				verdict = acceptColor.Sprint("ACCEPT")
			}
			fmt.Printf("%s  %q\n", verdict, input)
			if simulateShowPath {
				fmt.Printf("        path: %s\n", pathNames(d, path))
			}
			if !accepted {
				if r, uerr := simulate.FirstUnknown(d, input); errors.Is(uerr, simulate.ErrUnknownSymbol) {
					noteColor.Printf("        note: %q is not in the alphabet\n", r)
				}
			}
		}
		return nil
	},
}

func pathNames(d *automaton.Automaton, path []automaton.StateID) string {
	names := make([]string, len(path))
	for i, s := range path {
		names[i] = d.Name(s)
	}
	return strings.Join(names, " -> ")
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateNoMinimize, "no-minimize", false, "simulate the unminimized DFA")
	simulateCmd.Flags().BoolVar(&simulateShowPath, "show-path", false, "print the visited state path for every input")
	rootCmd.AddCommand(simulateCmd)
}
