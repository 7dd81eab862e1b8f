package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/runner"
	"github.com/vburojevic/convlog/internal/tui"
)

// UICmd runs an analysis behind an interactive progress view
type UICmd struct {
	RunFlags `embed:""`
}

// Run executes the UI command
func (c *UICmd) Run(globals *Globals) error {
	if !interactive(globals) {
		return outputErrorCommon(globals, &CLIError{
			Code:    CodeNotInteractive,
			Message: "convlog ui requires an interactive terminal",
			Hint:    "Use 'convlog analyze' for scripting",
		})
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, ctx := errgroup.WithContext(signalCtx)

	runID := uuid.NewString()
	opts, optErr := c.options(globals, runID)
	rep := newRunReporter(globals, runID, opts.Input)
	agg := analyzer.New()
	if optErr != nil {
		return rep.finish(nil, agg, optErr)
	}
	globals.Debug("starting interactive run", zap.String("input", opts.Input), zap.String("run_id", runID))

	job := runner.Start(ctx, opts, agg)

	model := tui.New(opts.Input, job.Events(), job.Cancel)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	group.Go(func() error {
		defer job.Cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})

	var (
		result *runner.Result
		runErr error
	)
	group.Go(func() error {
		result, runErr = job.Wait()
		return nil
	})

	if err := group.Wait(); err != nil {
		return outputErrorCommon(globals, &CLIError{Code: CodeTUIFailed, Message: err.Error(), Err: err})
	}

	rep.replay(result)
	return rep.finish(result, agg, runErr)
}

// interactive reports whether both stdin and stdout are terminals
func interactive(globals *Globals) bool {
	f, ok := globals.Stdout.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
