package cmd

import (
	"fmt"

	"content-forge/core/config"
	"content-forge/core/logger"
	"content-forge/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedsCmd groups seed file commands.
var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Manage reference seed files",
}

// seedsPushCmd uploads the local seed directory to the storage bucket.
var seedsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload reference.dir to the storage bucket under reference.prefix",
	Long: `Uploads every .yaml/.yml file of reference.dir so instances running with
reference.source=bucket read the same collections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		names, err := storage.UploadDir(cmd.Context(), client, cfg.Storage.Bucket, cfg.Reference.Prefix, cfg.Reference.Dir)
		if err != nil {
			return err
		}

		logg.Info("Seed files uploaded",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.Strings("objects", names),
		)
		return nil
	},
}

func init() {
	seedsCmd.AddCommand(seedsPushCmd)
	RootCmd.AddCommand(seedsCmd)
}
