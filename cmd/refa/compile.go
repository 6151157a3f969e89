package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automatonc/refa/serialize"
)

var (
	compileShowPostfix bool
	compileNoMinimize  bool
	compileJSONPath    string
	compileDOTPath     string
)

var compileCmd = &cobra.Command{
	Use:   "compile <regex>",
	Short: "Compile one regex and report the pipeline stages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := compilePattern(args[0], !compileNoMinimize)
		if err != nil {
			return fail(err)
		}

		fmt.Printf("pattern:  %s\n", c.pattern)
		if compileShowPostfix {
			fmt.Printf("postfix:  %s\n", serialize.Postfix(c.tokens))
		}
		fmt.Printf("nfa:      %d states\n", c.nfa.NumStates())
		fmt.Printf("dfa:      %d states\n", c.dfa.NumStates())
		if c.min != nil {
			fmt.Printf("minimal:  %d states\n", c.min.NumStates())
		}

		if compileJSONPath != "" {
			data, err := serialize.ToJSON(c.result())
			if err != nil {
				return fail(err)
			}
			if err := os.WriteFile(compileJSONPath, data, 0o644); err != nil {
				return fail(err)
			}
			fmt.Printf("wrote %s\n", compileJSONPath)
		}
		if compileDOTPath != "" {
			if err := os.WriteFile(compileDOTPath, []byte(serialize.ToDOT(c.result())), 0o644); err != nil {
				return fail(err)
			}
			fmt.Printf("wrote %s\n", compileDOTPath)
			base := strings.TrimSuffix(compileDOTPath, ".dot")
			fmt.Printf("render with: dot -Tpng %s -o %s.png\n", compileDOTPath, base)
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&compileShowPostfix, "show-postfix", false, "print the postfix token stream")
	compileCmd.Flags().BoolVar(&compileNoMinimize, "no-minimize", false, "stop after subset construction")
	compileCmd.Flags().StringVar(&compileJSONPath, "json", "", "write the resulting automaton as JSON to this path")
	compileCmd.Flags().StringVar(&compileDOTPath, "dot", "", "write the resulting automaton as Graphviz DOT to this path")
	rootCmd.AddCommand(compileCmd)
}
