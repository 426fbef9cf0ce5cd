package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/cli"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
)

var parentCmd = &cobra.Command{
	Use:   "parent",
	Short: "Show parent reports",
}

var parentDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Today's progress for each student",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway(logger)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var list []api.ParentDailySummary
		if id, _ := cmd.Flags().GetString("student"); id != "" {
			var one *api.ParentDailySummary
			if one, err = gw.ParentDailySummary(ctx, id); err == nil {
				list = []api.ParentDailySummary{*one}
			}
		} else {
			list, err = gw.ParentDailySummaries(ctx)
		}
		if err != nil {
			logger.Debug("fetch daily summaries failed", "error", err)
		}
		cli.NewReporter(os.Stdout).ParentDaily(fallback.ParentDaily(list, err))
		return nil
	},
}

var parentWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "The last seven days for each student",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway(logger)
		if err != nil {
			return err
		}
		list, err := gw.ParentWeeklySummaries(cmd.Context())
		if err != nil {
			logger.Debug("fetch weekly summaries failed", "error", err)
		}
		cli.NewReporter(os.Stdout).ParentWeekly(fallback.ParentWeekly(list, err))
		return nil
	},
}

func init() {
	parentCmd.AddCommand(parentDailyCmd)
	parentCmd.AddCommand(parentWeeklyCmd)
}
