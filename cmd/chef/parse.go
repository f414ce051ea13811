package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/parser"
	"github.com/chef-lang/chef/source"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file.chef>",
	Short: "Parse a Chef recipe and report its structure without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runParseChef(args[0])
		return nil
	},
	ValidArgsFunction: completeChefFiles,
}

func init() {
	parseCmd.Flags().BoolVarP(&parseJSON, "json", "j", false, "output the parsed program as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParseChef(filename string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	strict, debugCats, diagFormat, _ := resolvedOptions(rootCmd, cfg)

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
	emitDiagnostics(sink, diagFormat)

	if parseJSON {
		if err := printProgramJSON(prog); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		printProgramSummary(prog)
	}

	if sink.HasErrors() {
		os.Exit(1)
	}
}

func printProgramJSON(prog *ir.Program) error {
	out, err := json.MarshalIndent(prog, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling program to JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printProgramSummary renders a human-readable overview of prog: each
// recipe's title, serves count, ingredients, and method step count, with
// the entry recipe marked.
func printProgramSummary(prog *ir.Program) {
	for _, title := range prog.RecipeTitles {
		r, _ := prog.Recipe(title)
		marker := " "
		if title == prog.EntryTitle {
			marker = "*"
		}
		fmt.Printf("%s %s (serves %d)\n", marker, r.Title, r.ServesCount)
		for _, name := range r.IngredientNames {
			ing := r.Ingredients[name]
			fmt.Printf("    - %s = %d (%s)\n", ing.Name, ing.Initial.Num, ing.Initial.Tag)
		}
		fmt.Printf("    %d method step(s)\n", len(r.Method))
	}
}
