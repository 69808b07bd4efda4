// Package cli defines the cobra command tree for reviewctl.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amrshakerr/editor_portfolio/client"
)

var (
	flagServer string
	flagStore  string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Manage portfolio reviews from the terminal",
		Long:          "Submit, edit and delete reviews on the portfolio site. Ownership of a review is proven with a delete token kept in a local credential file, so edits only work from the machine that submitted the review.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "API base URL")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "credential file path (default: ~/.config/reviewctl/credentials.json)")

	root.AddCommand(
		newListCmd(),
		newSubmitCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newSummaryCmd(),
		newWatchCmd(),
	)

	return root
}

// newAPIClient opens the credential store and wraps it in an API client.
func newAPIClient() (*client.Client, error) {
	path := flagStore
	if path == "" {
		var err error
		path, err = client.DefaultStorePath()
		if err != nil {
			return nil, err
		}
	}

	store, err := client.OpenCredentialStore(path)
	if err != nil {
		return nil, err
	}
	return client.New(flagServer, store), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReviews(reviews []client.Review) {
	if len(reviews) == 0 {
		fmt.Println("No reviews yet.")
		return
	}
	for _, r := range reviews {
		owned := ""
		if r.IsOwnReview {
			owned = " (yours)"
		}
		fmt.Printf("%s  %d/5  %s%s\n    %s\n", r.ID, r.Rating, r.Name, owned, r.Comment)
		if r.Reply != nil {
			fmt.Printf("    ↳ owner reply: %s\n", r.Reply.Body)
		}
	}
}
