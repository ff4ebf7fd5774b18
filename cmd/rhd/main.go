package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kk-code-lab/rhd/internal/app"
	"github.com/kk-code-lab/rhd/internal/config"
	"github.com/kk-code-lab/rhd/internal/diag"
	"github.com/kk-code-lab/rhd/internal/fs"
	"github.com/kk-code-lab/rhd/internal/ui/pager"
	"github.com/spf13/cobra"
)

var version = "dev"

// Process exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitOpen  = 2
	exitRaw   = 3
	exitLoop  = 4
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

type rootFlags struct {
	configPath string
	view       string
	debug      bool
}

// viewer runs one viewing session for path.
type viewer func(ctx context.Context, path string, flags rootFlags, stderr io.Writer) error

func newRootCmd(run viewer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "rhd [flags] FILE",
		Short: "Page through a file as hex, annotated characters or plain text",
		Long: `rhd shows a file one screen at a time in one of three views.

KEYS:
    w / s       previous / next row
    a / d       previous / next page
    g / G       first / last page
    h           hex view
    c           annotated character view
    Ctrl+C      plain text view
    Ctrl+L      redraw
    Ctrl+Z      suspend
    Ctrl+Q      quit`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], flags, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/rhd/config.yaml)")
	cmd.Flags().StringVar(&flags.view, "view", "", "initial view: hex, chars or plain")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "log keypresses and layout changes")

	return cmd
}

func loadConfig(flags rootFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.view != "" {
		cfg.View = flags.view
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runViewer(ctx context.Context, path string, flags rootFlags, stderr io.Writer) (err error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	view, err := pager.ParseViewID(cfg.View)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	queue := diag.New(stderr)
	if err := queue.SetLevelName(cfg.LogLevel); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	defer func() {
		_ = queue.Flush(stderr)
	}()

	tty, err := pager.OpenTTY()
	if err != nil {
		return &exitError{code: exitRaw, err: err}
	}
	defer func() {
		_ = tty.Close()
	}()

	session := app.NewSession(tty, queue, app.Options{View: view, Stderr: stderr})
	if err := session.Init(path); err != nil {
		var fsErr *fs.Error
		if errors.As(err, &fsErr) {
			return &exitError{code: exitOpen, err: err}
		}
		return &exitError{code: exitRaw, err: err}
	}
	defer func() {
		if derr := session.Disable(); derr != nil && err == nil {
			err = &exitError{code: exitRaw, err: derr}
		}
	}()

	if err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			queue.Info("terminated by signal")
			return nil
		}
		return &exitError{code: exitLoop, err: err}
	}
	return nil
}

func main() {
	cmd := newRootCmd(runViewer)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rhd: %v\n", err)
		os.Exit(exitCode(err))
	}
}
