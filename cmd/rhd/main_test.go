package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, run viewer, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(run)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRequiresExactlyOneFile(t *testing.T) {
	called := false
	run := func(context.Context, string, rootFlags, io.Writer) error {
		called = true
		return nil
	}

	_, err := execute(t, run)
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = execute(t, run, "a.bin", "b.bin")
	require.Error(t, err)
	assert.False(t, called)
}

func TestRootPassesFlags(t *testing.T) {
	var (
		gotPath  string
		gotFlags rootFlags
	)
	run := func(_ context.Context, path string, flags rootFlags, _ io.Writer) error {
		gotPath, gotFlags = path, flags
		return nil
	}

	_, err := execute(t, run, "--view", "plain", "--debug", "--config", "/tmp/rhd.yaml", "data.bin")
	require.NoError(t, err)
	assert.Equal(t, "data.bin", gotPath)
	assert.Equal(t, rootFlags{configPath: "/tmp/rhd.yaml", view: "plain", debug: true}, gotFlags)
}

func TestRootPrintsVersion(t *testing.T) {
	out, err := execute(t, func(context.Context, string, rootFlags, io.Writer) error { return nil }, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestExitCodes(t *testing.T) {
	base := errors.New("boom")
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitUsage, exitCode(base))
	assert.Equal(t, exitOpen, exitCode(&exitError{code: exitOpen, err: base}))
	assert.Equal(t, exitLoop, exitCode(joinContext(&exitError{code: exitLoop, err: base})))
}

func joinContext(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestLoadConfigAppliesFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: chars\nlog_level: error\n"), 0o644))

	cfg, err := loadConfig(rootFlags{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "chars", cfg.View)
	assert.Equal(t, "error", cfg.LogLevel)

	cfg, err = loadConfig(rootFlags{configPath: path, view: "plain", debug: true})
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.View)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigRejectsUnknownView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := loadConfig(rootFlags{configPath: path, view: "octal"})
	require.Error(t, err)
}

func TestRunViewerReportsBadConfigAsUsage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: [\n"), 0o644))

	var stderr bytes.Buffer
	err := runViewer(context.Background(), "data.bin", rootFlags{configPath: path}, &stderr)
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}
