package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/cli"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practise in plain line mode without the full-screen interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		id := studentID(cmd)
		if id == "" {
			return errNoStudent
		}
		gw, err := newGateway(logger)
		if err != nil {
			return fmt.Errorf("create API client: %w", err)
		}
		count, _ := cmd.Flags().GetInt("count")

		machine := session.NewMachine(
			session.WithHealthCheck(cfg.API.HealthCheck),
			session.WithDailyTarget(cfg.Session.DailyTarget),
		)
		return cli.NewQuizCLI(gw, machine, logger, cli.WithLimit(count)).Run(cmd.Context(), id)
	},
}

func init() {
	quizCmd.Flags().Int("count", 0, "Stop after this many questions (0 = until you quit)")
}
