package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amrshakerr/editor_portfolio/client"
)

func newListCmd() *cobra.Command {
	var sortMode string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(sortMode, asJSON)
		},
	}

	cmd.Flags().StringVar(&sortMode, "sort", "newest", "sort order (newest|highest|lowest)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

func runList(sortMode string, asJSON bool) error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	mode := client.SortMode(sortMode)
	switch mode {
	case client.SortNewest, client.SortHighest, client.SortLowest:
	default:
		return fmt.Errorf("unknown sort order %q", sortMode)
	}

	controller := client.NewListController(api, nil)
	if err := controller.Start(context.Background(), ""); err != nil {
		return err
	}
	defer controller.Stop()
	controller.SetSort(mode)

	reviews := controller.Reviews()
	if asJSON {
		return printJSON(reviews)
	}
	printReviews(reviews)
	return nil
}
