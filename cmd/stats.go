package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/cli"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
)

var errNoStudent = errors.New("no student given: pass --student or set session.student_id")

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a student's progress, skills and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		id := studentID(cmd)
		if id == "" {
			return errNoStudent
		}
		gw, err := newGateway(logger)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		name := id
		if s, err := gw.FetchStudent(ctx, id); err == nil {
			name = s.Name
		}

		daily, err := gw.DailyStatus(ctx, id)
		if err != nil {
			logger.Debug("fetch daily status failed", "student", id, "error", err)
		}
		mastery, masteryErr := gw.Mastery(ctx, id)
		badges, badgesErr := gw.Achievements(ctx, id)

		fmt.Printf("%s's progress\n\n", name)
		cli.NewReporter(os.Stdout).Stats(daily, mastery, masteryErr, fallback.Achievements(badges, badgesErr))
		return nil
	},
}
