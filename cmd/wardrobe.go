package cmd

import (
	"fmt"

	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
	"github.com/spf13/cobra"
)

func newWardrobeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Manage the local wardrobe of saved item images",
		Long: `The wardrobe is a locally persisted, user-ordered collection of saved
item image locators. Ordering is significant: it is exactly the order
items are displayed in.`,
	}

	cmd.AddCommand(newWardrobeListCmd())
	cmd.AddCommand(newWardrobeAddCmd())
	cmd.AddCommand(newWardrobeRemoveCmd())
	cmd.AddCommand(newWardrobeReorderCmd())

	return cmd
}

func openWardrobe() (*wardrobe.Store, error) {
	path, err := config.WardrobePath()
	if err != nil {
		return nil, err
	}
	return wardrobe.NewStore(path), nil
}

func newWardrobeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wardrobe items in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openWardrobe()
			if err != nil {
				return err
			}
			images, err := store.Load()
			if err != nil {
				return err
			}

			if len(images) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items yet. Add some with `fitprint analyze --save` or `fitprint wardrobe add`.")
				return nil
			}
			for i, ref := range images {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, ref)
			}
			return nil
		},
	}
}

func newWardrobeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <image>",
		Short: "Append an image to the end of the wardrobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openWardrobe()
			if err != nil {
				return err
			}
			if err := store.Append(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[0])
			return nil
		},
	}
}

func newWardrobeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <image>",
		Short: "Remove an image from the wardrobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openWardrobe()
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newWardrobeReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <image>...",
		Short: "Replace the wardrobe ordering wholesale",
		Long: `Replaces the display order with the given sequence. The sequence must
contain exactly the current wardrobe items, just in a new order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openWardrobe()
			if err != nil {
				return err
			}
			if err := store.Reorder(args); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wardrobe reordered")
			return nil
		},
	}
}
