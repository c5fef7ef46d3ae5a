package cmd

import (
	"github.com/spf13/cobra"
)

// batchCmd groups batch inspection commands.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Inspect generation batches",
}

// batchStatusCmd prints the record of one batch.
var batchStatusCmd = &cobra.Command{
	Use:   "status <item|character> <batch_id>",
	Short: "Show the status of a generation batch",
	Long: `Reads generation_task:{kind}:{batch_id} from the cache. Records expire, so batches older than
their ttl report not found.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		status, err := a.service.BatchStatus(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, status)
	},
}

func init() {
	batchCmd.AddCommand(batchStatusCmd)
	RootCmd.AddCommand(batchCmd)
}
