package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// completeChefFiles provides shell completion for .chef source files,
// grounded on the teacher CLI's completeCookFiles.
func completeChefFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches, err := filepath.Glob(toComplete + "*.chef")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return matches, cobra.ShellCompDirectiveDefault
}
