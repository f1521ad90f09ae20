package cmd

import (
	"fmt"

	"github.com/JonathanAHerrera/Fitprint/internal/analysis"
	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/media"
	"github.com/JonathanAHerrera/Fitprint/internal/normalize"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var userID string
	var analysisID string
	var output string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Fetch past analyses from the service",
		Example: `  # List analyses for a user
  fitprint history --user user_1700000000000

  # Show one analysis in full
  fitprint history --id 3f6c9a70-1f2e-4f6e-8c43-d8f6f2a81a2b --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			client := analysis.NewClient(cfg, media.NewSource())

			if analysisID != "" {
				result, err := client.GetAnalysis(cmd.Context(), analysisID)
				if err != nil {
					return err
				}
				display := normalize.Report(result.SustainabilityReport)
				if output == "yaml" {
					return writeReportYAML(cmd.OutOrStdout(), result, display)
				}
				printReport(cmd.OutOrStdout(), result, display)
				return nil
			}

			if userID == "" {
				return fmt.Errorf("either --user or --id is required")
			}

			results, err := client.ListAnalyses(cmd.Context(), userID)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses found")
				return nil
			}
			for _, r := range results {
				display := normalize.Report(r.SustainabilityReport)
				brand := display.Brand
				if brand == "" {
					brand = "Unknown Brand"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d/100  %-24s %s\n",
					r.AnalysisID, display.OverallScore, brand, r.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "List analyses for this user id")
	cmd.Flags().StringVar(&analysisID, "id", "", "Fetch a single analysis by id")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")

	return cmd
}
