package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amrshakerr/editor_portfolio/client"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print change notifications as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	sub, err := client.Subscribe(wsURL(), func(table string) {
		fmt.Printf("[%s] change on %s\n", time.Now().Format("15:04:05"), table)
	})
	if err != nil {
		return err
	}
	defer sub.Close()

	fmt.Println("Watching for changes, Ctrl-C to stop...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}

// wsURL derives the websocket endpoint from the --server flag.
func wsURL() string {
	base := flagServer
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)
	return strings.TrimRight(base, "/") + "/api/v1/ws"
}
