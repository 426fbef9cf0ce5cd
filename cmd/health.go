package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/cli"
)

var errUnreachable = errors.New("backend unreachable")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway(logger)
		if err != nil {
			return err
		}
		ok := gw.CheckHealth(cmd.Context())
		cli.NewReporter(os.Stdout).Health(gw.HealthURL(), ok)
		if !ok {
			cmd.SilenceErrors = true
			return errUnreachable
		}
		return nil
	},
}
