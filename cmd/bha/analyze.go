package main

import (
	"fmt"

	"github.com/gregorian-09/buildhotspot/app"
	"github.com/gregorian-09/buildhotspot/internal/config"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd builds the `bha analyze` subcommand.
func NewAnalyzeCmd() *cobra.Command {
	var (
		recursive bool
		anonymize bool
		minCount  int
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze compiler trace files under a directory",
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
			if cmd.Flags().Changed("min-inclusion-count") {
				cfg.PCH.MinInclusionCount = minCount
			}

			uc := app.NewAnalyzeUseCase(cfg, nil)
			resp, err := uc.Run(app.AnalyzeRequest{
				Root:      root,
				Recursive: recursive,
				Anonymize: anonymize,
			})
			if err != nil {
				return err
			}

			printAnalysis(cmd, resp)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Recurse into subdirectories while collecting trace files")
	cmd.Flags().BoolVar(&anonymize, "anonymize", false, "Anonymize paths and commit info in the result")
	cmd.Flags().IntVar(&minCount, "min-inclusion-count", 5, "Minimum inclusion count for the precompiled-header suggester")

	return cmd
}

func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	loader := config.NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return config.ApplyEnvOverrides(cfg), nil
}

func printAnalysis(cmd *cobra.Command, resp app.AnalyzeResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzed %d compilation unit(s), total time %s\n",
		len(resp.Trace.CompilationUnits), resp.Analysis.TotalTime)

	for _, parseErr := range resp.ParseErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "parse error: %v\n", parseErr)
	}

	if len(resp.Suggestions) == 0 {
		fmt.Fprintln(out, "No suggestions.")
		return
	}

	fmt.Fprintf(out, "\n%d suggestion(s), highest estimated savings first:\n", len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		fmt.Fprintf(out, "  [%s] %s — %s (saves ~%s, confidence %.2f)\n",
			s.Priority, s.Type, s.Description, s.EstimatedSavings, s.Confidence)
	}
}
