package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/automatonc/refa/serialize"
)

var (
	batchNoMinimize bool
	batchJSONDir    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Compile every regex in a file, one per line",
	Long: `Compile every regex in a file, one pattern per line. Blank lines and
lines beginning with '#' are skipped. Patterns compile concurrently, one
full pipeline run per pattern; results print in file order. The exit code
is non-zero if any pattern fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fail(err)
		}
		defer f.Close()

		type job struct {
			lineNo  int
			pattern string
		}
		var jobs []job
		scanner := bufio.NewScanner(f)
		for lineNo := 1; scanner.Scan(); lineNo++ {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			jobs = append(jobs, job{lineNo: lineNo, pattern: line})
		}
		if err := scanner.Err(); err != nil {
			return fail(err)
		}

		if batchJSONDir != "" {
			if err := os.MkdirAll(batchJSONDir, 0o755); err != nil {
				return fail(err)
			}
		}

		// Each pipeline run owns its automata, so runs are independent;
		// bound the fan-out to the machine.
		type outcome struct {
			c   *compilation
			err error
		}
		outcomes := make([]outcome, len(jobs))
		sem := make(chan struct{}, runtime.GOMAXPROCS(0))
		var wg sync.WaitGroup
		for i, j := range jobs {
			wg.Add(1)
			go func(i int, j job) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				c, err := compilePattern(j.pattern, !batchNoMinimize)
				outcomes[i] = outcome{c: c, err: err}
			}(i, j)
		}
		wg.Wait()

		failed := 0
		for i, j := range jobs {
			o := outcomes[i]
			if o.err != nil {
				failed++
				fmt.Printf("%s line %d: %s\n", rejectColor.Sprint("FAIL"), j.lineNo, j.pattern)
				errorColor.Printf("      %v\n", o.err)
				continue
			}
			fmt.Printf("%s line %d: %s (%d states)\n",
				acceptColor.Sprint("OK  "), j.lineNo, j.pattern, o.c.result().NumStates())
			if batchJSONDir != "" {
				data, err := serialize.ToJSON(o.c.result())
				if err != nil {
					return fail(err)
				}
				out := filepath.Join(batchJSONDir, fmt.Sprintf("line%03d.json", j.lineNo))
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fail(err)
				}
			}
		}
		if failed > 0 {
			return fail(fmt.Errorf("%d of %d patterns failed", failed, len(jobs)))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchNoMinimize, "no-minimize", false, "stop each pattern after subset construction")
	batchCmd.Flags().StringVar(&batchJSONDir, "json-dir", "", "write each pattern's automaton JSON into this directory")
	rootCmd.AddCommand(batchCmd)
}
