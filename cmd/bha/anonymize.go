package main

import (
	"fmt"

	"github.com/gregorian-09/buildhotspot/app"
	"github.com/spf13/cobra"
)

// NewAnonymizeCmd builds the `bha anonymize` subcommand: runs the same
// analysis as `analyze` but always scrubs paths and commit info, for
// sharing a hotspot report outside the originating repository.
func NewAnonymizeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "anonymize [path]",
		Short: "Analyze trace files and anonymize paths and commit info in the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			uc := app.NewAnalyzeUseCase(cfg, nil)
			resp, err := uc.Run(app.AnalyzeRequest{
				Root:      root,
				Recursive: recursive,
				Anonymize: true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Anonymized %d compilation unit(s).\n", len(resp.Trace.CompilationUnits))
			for _, u := range resp.Trace.CompilationUnits {
				fmt.Fprintf(out, "  %s (%s)\n", u.SourceFile, u.Metrics.TotalTime)
			}
			if resp.Trace.CommitSHA != "" {
				fmt.Fprintf(out, "commit: %s branch: %s\n", resp.Trace.CommitSHA, resp.Trace.Branch)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Recurse into subdirectories while collecting trace files")

	return cmd
}
