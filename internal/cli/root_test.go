package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// executeJSON runs the root command in JSON mode and decodes the response.
// data, when non-nil, receives the response payload.
func executeJSON(t *testing.T, data any, args ...string) (CLIResponse, error) {
	t.Helper()
	out, err := execute(t, append([]string{"--format", "json"}, args...)...)

	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}, err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "posixtime", cmd.Use)
	assert.Contains(t, cmd.Long, "ETIMEDOUT")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"ticks", "delta", "add", "add-ns", "sub", "compare", "validate", "normalize", "strnlen", "check", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	for _, name := range []string{"rate", "width"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "0", flag.DefValue)
	}
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	dbFlag := historyCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "20", historyCmd.Flags().Lookup("limit").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "ticks", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := (&RootOptions{}).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), cfg.TickRateHz)
	assert.Equal(t, uint8(32), cfg.TickWidth)
	assert.Equal(t, "monotonic", cfg.Clock)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate_hz: 100\ntick_width: 16\nclock: realtime\n"), 0644))

	cfg, err := (&RootOptions{ConfigPath: path}).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), cfg.TickRateHz)
	assert.Equal(t, uint8(16), cfg.TickWidth)
	assert.Equal(t, "realtime", cfg.Clock)

	cfg, err = (&RootOptions{ConfigPath: path, RateHz: 250, Width: 64}).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(250), cfg.TickRateHz)
	assert.Equal(t, uint8(64), cfg.TickWidth)
}

func TestLoadConfig_CUE(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.cue")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate_hz: 250\n"), 0644))

	cfg, err := (&RootOptions{ConfigPath: path}).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(250), cfg.TickRateHz)
	assert.Equal(t, uint8(32), cfg.TickWidth)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := (&RootOptions{Width: 12}).LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_width")

	_, err = (&RootOptions{ConfigPath: "/nonexistent/kernel.yaml"}).LoadConfig()
	require.Error(t, err)
}

func TestConfigErrorExitCode(t *testing.T) {
	resp, err := executeJSON(t, nil, "--width", "12", "ticks", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)
}
