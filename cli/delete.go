package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete a review you submitted from this machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}
}

func runDelete(id string) error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	ok, err := api.DeleteReview(context.Background(), id)
	if err != nil {
		return err
	}
	if !ok {
		return errNotEditable
	}

	fmt.Println("Review deleted.")
	return nil
}
