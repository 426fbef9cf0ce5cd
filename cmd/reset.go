package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the remembered student on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.SelectionRepo()
		sel, err := repo.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load selection: %w", err)
		}
		if sel == nil {
			fmt.Println("No student selected.")
			return nil
		}
		if err := repo.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear selection: %w", err)
		}
		fmt.Printf("Forgot %s. The student picker will open next time.\n", sel.Name)
		return nil
	},
}
