package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a YAML kernel config and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestArithmetic_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add", []string{"add", "1.5", "2.75"}, "4.250000000 (ok)\n"},
		{"add_negative_sum", []string{"add", "--", "-3", "1.25"}, "-1.750000000 (negative)\n"},
		{"add_ns_carry", []string{"add-ns", "1.5", "600000000"}, "2.100000000 (ok)\n"},
		{"add_ns_negative", []string{"add-ns", "0", "--", "-1"}, "-0.000000001 (negative)\n"},
		{"sub_borrow", []string{"sub", "5", "3.5"}, "1.500000000 (ok)\n"},
		{"sub_equal", []string{"sub", "2.5", "2:500000000"}, "0.000000000 (ok)\n"},
		{"sub_would_be_negative", []string{"sub", "1", "2"}, "0.000000000 (negative)\n"},
		{"compare_equal", []string{"compare", "1.5", "1:500000000"}, "0\n"},
		{"compare_less", []string{"compare", "1", "1:1"}, "-1\n"},
		{"compare_nil_first", []string{"compare", "nil", "0"}, "-1\n"},
		{"compare_nil_second", []string{"compare", "0", "nil"}, "1\n"},
		{"compare_both_nil", []string{"compare", "nil", "nil"}, "0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestArithmetic_JSON(t *testing.T) {
	var data ArithmeticResult
	resp, err := executeJSON(t, &data, "sub", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "subtract", data.Op)
	assert.Equal(t, "negative", data.Status)
	assert.Equal(t, 1, data.Code)
	assert.Equal(t, int64(0), data.Value.Seconds)
}

func TestArithmetic_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"add_nil", []string{"add", "nil", "1"}, ExitCommandError, "EINVAL"},
		{"sub_nil", []string{"sub", "1", "nil"}, ExitCommandError, "EINVAL"},
		{"sub_denormalized", []string{"sub", "5:-2000000000", "3:0"}, ExitFailure, "EINTERNAL"},
		{"add_ns_bad_count", []string{"add-ns", "1", "many"}, ExitCommandError, ErrCodeParse},
		{"compare_unparseable", []string{"compare", "1", "x"}, ExitCommandError, ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := executeJSON(t, nil, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "1:999999999")
	require.NoError(t, err)
	assert.Equal(t, "✓ 1.999999999 is valid\n", out)

	out, err = execute(t, "validate", "1:1000000000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "✗ 1:1000000000 is not a valid timestamp\n", out)

	var data ValidationResult
	_, err = executeJSON(t, &data, "validate", "nil")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.False(t, data.Valid)
	assert.Nil(t, data.Timestamp)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"carry", []string{"normalize", "1:2500000000"}, "3.500000000\n"},
		{"borrow", []string{"normalize", "2:-1"}, "1.999999999\n"},
		{"nanoseconds", []string{"normalize", "--ns", "1500000000"}, "1.500000000\n"},
		{"negative_nanoseconds", []string{"normalize", "--ns", "--", "-1"}, "-0.000000001\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStrnlen(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"whole_string", []string{"strnlen", "hello"}, "5\n"},
		{"bounded", []string{"strnlen", "hello", "--max", "3"}, "3\n"},
		{"stops_at_nul", []string{"strnlen", `ab\x00cd`, "--escaped"}, "2\n"},
		{"zero_max", []string{"strnlen", "hello", "--max", "0"}, "0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStrnlen_BadEscape(t *testing.T) {
	resp, err := executeJSON(t, nil, "strnlen", `\q`, "--escaped")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
}
