package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/interp"
	"github.com/chef-lang/chef/parser"
	"github.com/chef-lang/chef/source"
)

var runCmd = &cobra.Command{
	Use:   "run <file.chef>",
	Short: "Parse and execute a Chef recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runChef(args[0])
		return nil
	},
	ValidArgsFunction: completeChefFiles,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runChef parses and executes filename, writing diagnostics to stderr
// and the program's served baking dishes to stdout, then exits with the
// spec §6 exit code convention: 0 on a clean run, 1 on any parse or
// runtime error.
func runChef(filename string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	strict, debugCats, diagFormat, mixSeed := resolvedOptions(rootCmd, cfg)

	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", filename, err)
		os.Exit(1)
	}

	sink := diag.New(filename, strict, os.Stderr)
	for _, c := range debugCats {
		sink.EnableDebug(c)
	}

	buf := source.New(filename, content)
	prog := parser.New(buf, sink).ParseProgram()

	if sink.HasErrors() {
		emitDiagnostics(sink, diagFormat)
		os.Exit(1)
	}

	in := interp.New(sink, os.Stdin, os.Stdout)
	if mixSeed != 0 {
		in.SeedMix(mixSeed)
	}
	runErr := in.Run(prog)
	emitDiagnostics(sink, diagFormat)
	if runErr != nil || sink.HasErrors() {
		os.Exit(1)
	}
}

func emitDiagnostics(sink *diag.Sink, format string) {
	f := diag.Text
	if format == "yaml" {
		f = diag.YAML
	}
	sink.Emit(os.Stderr, f)
}
