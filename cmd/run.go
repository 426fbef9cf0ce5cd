package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/app"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The terminal belongs to the TUI; logs go to a file or nowhere.
	tuiLogger, closeLog, err := openTUILogger(cmd, dbPath)
	if err != nil {
		return err
	}
	defer closeLog()

	gw, err := newGateway(tuiLogger)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	selections := st.SelectionRepo()
	selected, err := initialStudent(ctx, cmd, gw, selections)
	if err != nil {
		return err
	}

	return app.Run(ctx, app.Options{
		Gateway: gw,
		Machine: session.NewMachine(
			session.WithHealthCheck(cfg.API.HealthCheck),
			session.WithDailyTarget(cfg.Session.DailyTarget),
		),
		Selections: selections,
		Logger:     tuiLogger,
		Selected:   selected,
	})
}

func openTUILogger(cmd *cobra.Command, dbPath string) (*slog.Logger, func(), error) {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	path := filepath.Join(filepath.Dir(dbPath), "mathcoach.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, true), func() { f.Close() }, nil
}

// initialStudent decides who practises first: an explicit --student or
// configured ID wins over the remembered selection. Nil opens the picker.
func initialStudent(ctx context.Context, cmd *cobra.Command, gw api.Gateway, selections store.SelectionRepo) (*api.Student, error) {
	if id := studentID(cmd); id != "" {
		s, err := gw.FetchStudent(ctx, id)
		if err == nil {
			return s, nil
		}
		for _, local := range fallback.LocalStudents() {
			if local.ID == id {
				return &local, nil
			}
		}
		return nil, fmt.Errorf("student %q: %s", id, api.UserMessage(err))
	}

	sel, err := selections.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	if sel == nil {
		return nil, nil
	}
	return &api.Student{
		ID:                   sel.StudentID,
		Name:                 sel.Name,
		YearLevel:            sel.YearLevel,
		Avatar:               sel.Avatar,
		TargetDailyQuestions: cfg.Session.DailyTarget,
	}, nil
}
