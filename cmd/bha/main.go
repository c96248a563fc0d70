package main

import (
	"os"

	"github.com/gregorian-09/buildhotspot/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bha",
	Short: "Build-time hotspot analyzer",
	Long: `bha parses compiler-emitted timing artifacts (Clang trace JSON, GCC
phase tables, MSVC timing pairs, Intel optimization reports, NVCC logs)
into a uniform model, aggregates them across a build, and suggests
targeted build-time fixes (precompiled headers, forward declarations,
unity-build candidates, and more).`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Path to .bharc.toml (defaults to searching upward from the current directory)")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewAnonymizeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
