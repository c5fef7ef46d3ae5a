package cmd

import (
	"encoding/json"
	"fmt"

	"content-forge/feature/characters"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for plan commands
	cacheFirst  bool
	genderRatio string
	dryRunItems bool
)

// planCmd is the parent command for one-shot planning runs.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run one planning cycle and enqueue the missing content",
	Long: `Computes what the item templates or the character pool lack and dispatches generation batches.
Workers started with "start" or "worker" pick the batches up.`,
}

// planItemsCmd plans item templates.
var planItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Plan missing item templates",
	Long: `Builds the etalon pool from the cached reference data, diffs it against item_templates and
dispatches the missing variants.

Examples:
  # Cache seeds first, then plan
  plan items --cache

  # Report the diff without dispatching or purging
  plan items --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if cacheFirst {
			if _, err := a.store.CacheAll(ctx); err != nil {
				return fmt.Errorf("failed to cache reference data: %w", err)
			}
		}

		if dryRunItems {
			report, err := a.itemPlanner.Preview(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		}

		report, err := a.service.PlanItems(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

// planCharactersCmd plans character pool entries.
var planCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Plan missing character pool entries",
	Long: `Tops the character pool up to characters.target_pool_size over the playable races.

Examples:
  plan characters --gender-ratio MALE:0.6,FEMALE:0.4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if cacheFirst {
			if _, err := a.store.CacheAll(ctx); err != nil {
				return fmt.Errorf("failed to cache reference data: %w", err)
			}
		}

		ratioSpec := a.cfg.Characters.DefaultGenderRatio
		if genderRatio != "" {
			ratioSpec = genderRatio
		}
		ratio, err := characters.ParseGenderRatio(ratioSpec)
		if err != nil {
			return err
		}

		report, err := a.service.PlanCharacters(ctx, nil, ratio)
		if err != nil {
			return err
		}
		a.logger.Info("Character planning finished", zap.Int("planned", report.Planned))
		return printJSON(cmd, report)
	},
}

func init() {
	planCmd.PersistentFlags().BoolVar(&cacheFirst, "cache", false, "Cache reference data before planning")
	planItemsCmd.Flags().BoolVar(&dryRunItems, "dry-run", false, "Report the diff without purging or dispatching")
	planCharactersCmd.Flags().StringVar(&genderRatio, "gender-ratio", "", "Override characters.default_gender_ratio (MALE:x,FEMALE:y)")

	planCmd.AddCommand(planItemsCmd, planCharactersCmd)
	RootCmd.AddCommand(planCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
