package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// prestartCmd runs the pre-start pipeline once.
var prestartCmd = &cobra.Command{
	Use:   "prestart",
	Short: "Run the pre-start pipeline once and exit",
	Long: `Caches reference data, verifies the target tables, and runs the item and character planners.
Exits non-zero when a step exhausts its retries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		return a.service.RunPrestart(ctx)
	},
}

func init() {
	RootCmd.AddCommand(prestartCmd)
}
