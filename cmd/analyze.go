package cmd

import (
	"fmt"
	"log/slog"

	"github.com/JonathanAHerrera/Fitprint/internal/analysis"
	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/media"
	"github.com/JonathanAHerrera/Fitprint/internal/normalize"
	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var userID string
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a clothing photo for sustainability",
		Long: `Submits a clothing photo to the analysis service and prints the
sustainability report with alternative suggestions.

The image argument is a local file path or an http(s) URL. Analysis runs
server-side AI inference, so a single request can take a couple of minutes.`,
		Example: `  # Analyze a photo from disk
  fitprint analyze shirt.jpg

  # Analyze and save the photo to the local wardrobe
  fitprint analyze shirt.jpg --save

  # Machine-readable output
  fitprint analyze shirt.jpg --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageRef := args[0]
			if userID == "" {
				userID = config.UserID()
			}

			cfg := config.Load()
			source := media.NewSource()
			client := analysis.NewClient(cfg, source)
			orch := analysis.NewOrchestrator(source, client)
			orch.Subscribe(func(p analysis.Phase) {
				slog.Info("Analysis phase changed", "phase", p)
			})

			result, err := orch.Submit(cmd.Context(), imageRef, userID)
			if err != nil {
				return err
			}

			display := normalize.Report(result.SustainabilityReport)

			if save {
				path, err := config.WardrobePath()
				if err != nil {
					return err
				}
				if err := wardrobe.NewStore(path).Append(imageRef); err != nil {
					return fmt.Errorf("failed to save to wardrobe: %w", err)
				}
				slog.Info("Saved to wardrobe", "image", imageRef)
			}

			if output == "yaml" {
				return writeReportYAML(cmd.OutOrStdout(), result, display)
			}
			printReport(cmd.OutOrStdout(), result, display)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User identifier (defaults to a fresh timestamp id)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	cmd.Flags().BoolVar(&save, "save", false, "Append the image to the local wardrobe on success")

	return cmd
}
