package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitprint",
		Short: "Clothing sustainability analysis client with a local wardrobe",
		Long: `Fitprint submits clothing photos to the Fitprint analysis service and
renders the sustainability report with more sustainable alternatives.

It also keeps a local wardrobe: a user-ordered collection of saved item
images that can be listed, reordered, and pruned.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newWardrobeCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
