package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errNotEditable covers every refusal the same way: missing credential,
// wrong token, or a review that no longer exists.
var errNotEditable = errors.New("review not found or not owned by this machine")

func newEditCmd() *cobra.Command {
	var name string
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "edit <review-id>",
		Short: "Edit a review you submitted from this machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(args[0], name, rating, comment)
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

func runEdit(id, name string, rating int, comment string) error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	ok, err := api.UpdateReview(context.Background(), id, name, rating, comment)
	if err != nil {
		return err
	}
	if !ok {
		return errNotEditable
	}

	fmt.Println("Review updated.")
	return nil
}
