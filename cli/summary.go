package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the average rating and review count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary()
		},
	}
}

func runSummary() error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	summary, err := api.Summary(context.Background())
	if err != nil {
		return err
	}

	if summary.Average == nil {
		fmt.Println("No ratings yet.")
		return nil
	}

	fmt.Printf("%.1f/5 across %d reviews\n", *summary.Average, summary.Count)
	return nil
}
