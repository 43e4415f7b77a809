package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	return executeCmdWithInput(cmd, nil, args...)
}

func executeCmdWithInput(cmd *cobra.Command, in io.Reader, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	resetFlags(cmd)
	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	if in == nil {
		in = strings.NewReader("")
	}
	cmd.SetIn(in)
	cmd.SetArgs(args)

	err = cmd.Execute()
	_ = cleanupServices()
	return bufOut.String(), bufErr.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// setupTest isolates HOME and forces the non-interactive code paths.
func setupTest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CALM_NOTIFICATIONS_ENABLED", "false")

	origTerminal, origInterval := stdoutIsTerminal, tickInterval
	stdoutIsTerminal = func() bool { return false }
	tickInterval = time.Millisecond
	t.Cleanup(func() {
		stdoutIsTerminal, tickInterval = origTerminal, origInterval
	})
	return home
}

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "calm" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "calm")
	}
}

func TestRootCmd_Help(t *testing.T) {
	setupTest(t)
	stdout, _, err := executeCmd(rootCmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "calm")
	assert.Contains(t, stdout, "breathe")
	assert.Contains(t, stdout, "journal")
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"data-dir", "engine", "json", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
}

func TestRootCmd_NeedsTerminal(t *testing.T) {
	setupTest(t)
	_, _, err := executeCmd(rootCmd)
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestRootCmd_InvalidEngine(t *testing.T) {
	setupTest(t)
	_, _, err := executeCmd(rootCmd, "emotions", "--engine", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.engine")
}

func TestRootCmd_DataDirFlag(t *testing.T) {
	setupTest(t)
	dir := t.TempDir()

	_, _, err := executeCmd(rootCmd, "journal", "add", "--data-dir", dir, "--engine", "json", "first entry")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "calm.json"))

	stdout, _, err := executeCmd(rootCmd, "journal", "list", "--data-dir", dir, "--engine", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "first entry")

	// The default data dir has its own, empty journal.
	stdout, _, err = executeCmd(rootCmd, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No journal entries yet")
}

func TestAboutCmd(t *testing.T) {
	setupTest(t)
	stdout, _, err := executeCmd(rootCmd, "about")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Feel → Cope → Learn")
	assert.Contains(t, stdout, "988")
	assert.Contains(t, stdout, "741741")
}

func TestConfigCmd(t *testing.T) {
	home := setupTest(t)

	stdout, _, err := executeCmd(rootCmd, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".calm", "config.toml"), strings.TrimSpace(stdout))

	_, _, err = executeCmd(rootCmd, "config", "set", "breathing.phase_seconds", "5")
	require.NoError(t, err)

	stdout, _, err = executeCmd(rootCmd, "config", "show")
	require.NoError(t, err)
	assert.Regexp(t, `breathing\.phase_seconds\s+= 5`, stdout)

	_, _, err = executeCmd(rootCmd, "config", "set", "no.such.key", "1")
	assert.Error(t, err)

	_, _, err = executeCmd(rootCmd, "config", "set", "storage.engine", "postgres")
	assert.Error(t, err)
}

func TestConfigCmd_EnvOverride(t *testing.T) {
	setupTest(t)
	t.Setenv("CALM_MOOD_WINDOW_DAYS", "14")

	stdout, _, err := executeCmd(rootCmd, "config", "show")
	require.NoError(t, err)
	assert.Regexp(t, `mood\.window_days\s+= 14`, stdout)
}

func TestMCPCmd_Disabled(t *testing.T) {
	setupTest(t)
	_, _, err := executeCmd(rootCmd, "config", "set", "mcp.enabled", "false")
	require.NoError(t, err)

	_, _, err = executeCmd(rootCmd, "mcp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
