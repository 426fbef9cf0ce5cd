// Package cli holds the line-mode front ends that run without the
// full-screen TUI.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/timer"
)

var errQuit = errors.New("quit")

// QuizCLI drives a question session over plain stdin/stdout.
type QuizCLI struct {
	machine      *session.Machine
	driver       *session.Driver
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	limit        int

	bold   *color.Color
	dim    *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// QuizOption configures a QuizCLI.
type QuizOption func(*QuizCLI)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) QuizOption {
	return func(cli *QuizCLI) {
		cli.stdinReader = bufio.NewReader(in)
		cli.stdoutWriter = out
	}
}

// WithLimit stops the quiz after n answered questions. Zero means no limit.
func WithLimit(n int) QuizOption {
	return func(cli *QuizCLI) { cli.limit = n }
}

// NewQuizCLI returns a QuizCLI reading os.Stdin and writing os.Stdout.
func NewQuizCLI(gw api.Gateway, machine *session.Machine, logger *slog.Logger, opts ...QuizOption) *QuizCLI {
	if machine == nil {
		machine = session.NewMachine()
	}
	cli := &QuizCLI{
		machine:      machine,
		driver:       session.NewDriver(gw, logger),
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		dim:          color.New(color.Faint),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
		yellow:       color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Run practises questions for studentID until the student quits, input
// ends, the limit is reached or an interrupt arrives.
func (cli *QuizCLI) Run(ctx context.Context, studentID string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- cli.loop(ctx, studentID)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "\nReceived interrupt signal, exiting...")
		return nil
	case err := <-errCh:
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

func (cli *QuizCLI) loop(ctx context.Context, studentID string) error {
	s := cli.driver.Dispatch(ctx, cli.machine, cli.machine.NewState(studentID), session.Begin{})

	answered := 0
	for {
		switch s.Phase {
		case session.PhaseError:
			cli.red.Fprintf(cli.stdoutWriter, "Something went wrong: %s\n", s.ErrMsg)
			if _, err := cli.prompt("Press Enter to retry (q to quit): "); err != nil {
				return err
			}
			s = cli.driver.Dispatch(ctx, cli.machine, s, session.RetryRequested{})

		case session.PhasePresenting:
			next, err := cli.ask(ctx, s)
			if err != nil {
				return err
			}
			s = next

		case session.PhaseExplaining:
			cli.explain(s)
			answered++
			if cli.limit > 0 && answered >= cli.limit {
				cli.summary(s, answered)
				return nil
			}
			if _, err := cli.prompt("Press Enter for the next question (q to quit): "); err != nil {
				cli.summary(s, answered)
				return err
			}
			s = cli.driver.Dispatch(ctx, cli.machine, s, session.NextRequested{})

		default:
			return fmt.Errorf("session stopped in phase %s", s.Phase)
		}
	}
}

// ask shows the question and reads answers until one is submitted.
func (cli *QuizCLI) ask(ctx context.Context, s session.State) (session.State, error) {
	item := s.Item
	completed, target := s.DailyProgress()
	fmt.Fprintln(cli.stdoutWriter)
	cli.dim.Fprintf(cli.stdoutWriter, "Question %d of %d · Difficulty %d\n", completed+1, target, item.Difficulty)
	cli.bold.Fprintln(cli.stdoutWriter, item.QuestionText)

	mode := answer.InputModeFor(item.QuestionType)
	for {
		line, err := cli.prompt("Your answer (? for a hint): ")
		if err != nil {
			return s, err
		}
		if line == "?" {
			if !s.ShowHint {
				s = cli.driver.Dispatch(ctx, cli.machine, s, session.HintToggled{})
			}
			cli.yellow.Fprintf(cli.stdoutWriter, "Hint: %s\n", item.Hint)
			continue
		}
		if line == "" {
			continue
		}
		if !acceptsAll(mode, line) {
			cli.yellow.Fprintln(cli.stdoutWriter, "Numbers only, please (digits and . / -).")
			continue
		}
		s = cli.driver.Dispatch(ctx, cli.machine, s, session.AnswerChanged{Text: line})
		return cli.driver.Dispatch(ctx, cli.machine, s, session.SubmitRequested{}), nil
	}
}

func (cli *QuizCLI) explain(s session.State) {
	if s.IsCorrect() {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		cli.green.Fprintln(cli.stdoutWriter, "Correct!")
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		cli.red.Fprintf(cli.stdoutWriter, "Not quite. The answer is %s\n", s.Item.CorrectAnswer)
	}
	if s.LastEvent != nil {
		fmt.Fprintf(cli.stdoutWriter, "   Time spent: %s\n", timer.Format(s.Elapsed()))
	}
	if s.Item.Explanation != "" {
		fmt.Fprintf(cli.stdoutWriter, "   %s\n", s.Item.Explanation)
	}
	if s.Daily != nil && s.Daily.IsCompleted {
		cli.yellow.Fprintln(cli.stdoutWriter, "🎉 Daily goal reached!")
	}
}

func (cli *QuizCLI) summary(s session.State, answered int) {
	completed, target := s.DailyProgress()
	fmt.Fprintln(cli.stdoutWriter)
	cli.bold.Fprintf(cli.stdoutWriter, "Answered %d this run. Today: %d/%d\n", answered, completed, target)
	if streak, ok := s.Streak(); ok {
		fmt.Fprintf(cli.stdoutWriter, "🔥 Streak: %d days\n", streak)
	}
}

// prompt prints label and returns the trimmed line. "q" yields errQuit.
func (cli *QuizCLI) prompt(label string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, label)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "q") {
		return "", errQuit
	}
	return line, nil
}

// acceptsAll reports whether every rune of s could have been typed in mode.
func acceptsAll(mode answer.InputMode, s string) bool {
	for _, r := range s {
		if !mode.Accepts(r) {
			return false
		}
	}
	return true
}
