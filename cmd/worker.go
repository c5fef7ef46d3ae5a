package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// workerCmd consumes generation jobs without serving HTTP.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume generation jobs",
	Long:  `Runs queue.concurrency consumer loops over the generation queue until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		a.consumer().Run(ctx)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(workerCmd)
}
