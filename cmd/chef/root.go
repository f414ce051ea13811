package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// chefConfig mirrors SPEC_FULL.md §4.AMBIENT.2's TOML schema; flags
// actually passed on the command line override whatever --config
// supplies.
type chefConfig struct {
	Strict            bool     `toml:"strict"`
	DebugCategories   []string `toml:"debug_categories"`
	MixSeed           uint64   `toml:"mix_seed"`
	DiagnosticsFormat string   `toml:"diagnostics_format"`
}

var (
	flagConfigPath string
	flagStrict     bool
	flagDebugOnly  []string
	flagDiagFormat string
)

var rootCmd = &cobra.Command{
	Use:   "chef [file.chef]",
	Short: "Parse and execute Chef recipes",
	Long: `chef is the reference toolchain for the Chef esoteric language:
recipes are programs, ingredients are variables, and the kitchen is the
machine.

Invoking chef with a bare source file is shorthand for "chef run".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		runChef(args[0])
		return nil
	},
	ValidArgsFunction: completeChefFiles,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "promote every warning to an error")
	rootCmd.PersistentFlags().StringArrayVar(&flagDebugOnly, "debug-only", nil, "enable a debug channel (lexer, parser, scope, interp, driver); repeatable")
	rootCmd.PersistentFlags().StringVar(&flagDiagFormat, "diagnostics-format", "text", "diagnostics output format: text or yaml")
}

// singleDashLongFlags carries forward the reference CLI's single-dash
// spelling of its two long flags (spec §6: "-debug-only", "-strict").
// cobra/pflag only treats a lone leading dash as a run of single-letter
// shorthand flags, so these are rewritten to their double-dash spelling
// before cobra ever sees argv.
var singleDashLongFlags = map[string]bool{
	"-strict":     true,
	"-debug-only": true,
}

func normalizeSingleDashFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		name, _, _ := strings.Cut(a, "=")
		if singleDashLongFlags[name] {
			out = append(out, "-"+a)
			continue
		}
		out = append(out, a)
	}
	return out
}

// Execute runs the root command over a normalized argv.
func Execute() error {
	rootCmd.SetArgs(normalizeSingleDashFlags(os.Args[1:]))
	return rootCmd.Execute()
}

func loadConfig() (chefConfig, error) {
	cfg := chefConfig{DiagnosticsFormat: "text"}
	if flagConfigPath == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(flagConfigPath, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", flagConfigPath, err)
	}
	return cfg, nil
}

// resolvedOptions merges a loaded config with whichever flags were
// actually set on the command line, flags winning (spec §4.AMBIENT.2).
func resolvedOptions(cmd *cobra.Command, cfg chefConfig) (strict bool, debugCategories []string, diagFormat string, mixSeed uint64) {
	strict = cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = flagStrict
	}
	debugCategories = cfg.DebugCategories
	if cmd.Flags().Changed("debug-only") {
		debugCategories = flagDebugOnly
	}
	diagFormat = cfg.DiagnosticsFormat
	if diagFormat == "" {
		diagFormat = "text"
	}
	if cmd.Flags().Changed("diagnostics-format") {
		diagFormat = flagDiagFormat
	}
	mixSeed = cfg.MixSeed
	return
}
