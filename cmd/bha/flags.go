package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// explicitFlags extracts which flags were explicitly set on the command
// line, for use with internal/config's merge helpers so file/env config
// only yields to a flag the user actually typed.
func explicitFlags(cmd *cobra.Command) map[string]bool {
	set := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})
	return set
}
