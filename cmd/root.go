package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/config"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mathcoach",
	Short: "Daily math practice for kids",
	Long:  "MathCoach is a terminal client for a math practice backend: one question at a time, with hints, explanations and streaks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logger = newLogger(os.Stderr, debug)
		slog.SetDefault(logger)

		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml or ~/.config/mathcoach/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHCOACH_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("student", "", "Student ID (overrides session.student_id)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(parentCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: debug}))
}

// newGateway builds the HTTP client from the loaded config.
func newGateway(l *slog.Logger) (*api.Client, error) {
	return api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout), api.WithLogger(l))
}

// studentID returns --student, then the configured student.
func studentID(cmd *cobra.Command) string {
	if id, _ := cmd.Flags().GetString("student"); id != "" {
		return id
	}
	return cfg.Session.StudentID
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or MATHCOACH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
