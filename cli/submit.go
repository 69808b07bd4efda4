package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var name string
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new review",
		Long:  "Submit a new review. The delete token the server hands back is stored locally so this machine can edit or delete the review later.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(name, rating, comment)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating 1-5 (required)")
	cmd.Flags().StringVar(&comment, "comment", "", "review text (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("rating")
	cmd.MarkFlagRequired("comment")

	return cmd
}

func runSubmit(name string, rating int, comment string) error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	review, err := api.CreateReview(context.Background(), name, rating, comment)
	if err != nil {
		return err
	}

	fmt.Printf("Review submitted: %s\n", review.ID)
	return nil
}
