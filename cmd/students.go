package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/cli"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List students",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway(logger)
		if err != nil {
			return err
		}
		students, err := gw.FetchStudents(cmd.Context())
		if err != nil {
			logger.Debug("fetch students failed", "error", err)
		}
		cli.NewReporter(os.Stdout).Students(fallback.Students(students, err))
		return nil
	},
}
