// Package app owns the raw-mode lifecycle of a viewing session: the file is
// opened, the terminal is switched into raw mode and both are released again
// on every exit path.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kk-code-lab/rhd/internal/diag"
	"github.com/kk-code-lab/rhd/internal/fs"
	"github.com/kk-code-lab/rhd/internal/textutil"
	"github.com/kk-code-lab/rhd/internal/ui/pager"
)

// ErrNotInitialized is returned by Run before a successful Init.
var ErrNotInitialized = errors.New("session is not initialized")

// Options tune a Session.
type Options struct {
	// View is the view shown first.
	View pager.ViewID
	// Stderr receives queued diagnostics once the terminal is restored.
	// Defaults to os.Stderr.
	Stderr io.Writer
}

// Session ties one file window to the terminal.
type Session struct {
	console pager.Console
	diag    *diag.Queue
	opts    Options

	window *fs.Window
	bridge *pager.ResizeBridge
	pager  *pager.Pager

	initialized bool
}

// NewSession returns an uninitialized session drawing on console.
func NewSession(console pager.Console, queue *diag.Queue, opts Options) *Session {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if queue == nil {
		queue = diag.New(opts.Stderr)
	}
	return &Session{console: console, diag: queue, opts: opts}
}

// Initialized reports whether Init has succeeded and Disable has not run since.
func (s *Session) Initialized() bool {
	return s.initialized
}

// Pager returns the pager of an initialized session.
func (s *Session) Pager() *pager.Pager {
	return s.pager
}

// Init opens path, lays the views out for the current terminal and enables
// raw mode. Calling Init on an initialized session only logs a warning.
// On failure everything acquired so far is released and the terminal is
// left untouched.
func (s *Session) Init(path string) error {
	if s.initialized {
		s.diag.Warn("session already initialized, ignoring init")
		return nil
	}

	window, err := fs.Open(path)
	if err != nil {
		return err
	}
	s.window = window
	s.bridge = pager.NewResizeBridge(s.console.Size)
	s.pager = pager.New(s.console, window, s.bridge,
		s.diag.WithField("file", textutil.DisplayName(path)))

	if err := s.setup(); err != nil {
		s.release()
		return err
	}
	s.initialized = true
	s.diag.WithField("size", window.Len()).Debug("session initialized")
	return nil
}

func (s *Session) setup() error {
	s.bridge.Start()
	s.bridge.Raise()
	if _, err := s.pager.ApplyResize(); err != nil {
		return fmt.Errorf("initial layout: %w", err)
	}
	if err := s.pager.SwitchTo(s.opts.View); err != nil {
		return fmt.Errorf("select %s view: %w", s.opts.View, err)
	}
	if err := s.console.EnableRaw(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	return nil
}

// Disable restores the terminal, closes the file and flushes diagnostics.
// It is safe to call more than once; only the first call after Init acts.
func (s *Session) Disable() error {
	if !s.initialized {
		return nil
	}
	s.initialized = false

	errs := s.release()
	if err := s.diag.Flush(s.opts.Stderr); err != nil {
		errs = append(errs, fmt.Errorf("flush diagnostics: %w", err))
	}
	return errors.Join(errs...)
}

func (s *Session) release() []error {
	var errs []error
	if err := s.console.Restore(); err != nil {
		errs = append(errs, err)
	}
	if s.bridge != nil {
		s.bridge.Stop()
	}
	if s.window != nil {
		if err := s.window.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Run drives the pager until the user quits, ctx is cancelled or a
// termination signal arrives. A panic inside the loop restores the terminal
// before it propagates.
func (s *Session) Run(ctx context.Context) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	defer func() {
		if r := recover(); r != nil {
			_ = s.Disable()
			panic(r)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, terminationSignals()...)
	defer stop()

	return s.pager.Run(ctx)
}
