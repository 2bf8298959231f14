package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]int{"scenarios": 3})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeNotFound, "scenarios directory not found", map[string]string{"dir": "x"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "scenarios directory not found", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("All scenarios valid"))
	assert.Equal(t, "All scenarios valid\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Error(ErrCodeGeneric, "load failed", map[string]string{"file": "a.yaml"}))
	assert.Equal(t, "Error [E001]: load failed\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error(ErrCodeGeneric, "load failed", "a.yaml"))
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "Details: a.yaml")
}

func TestOutputFormatter_CheckReportJSON(t *testing.T) {
	t.Run("no_failures", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf}

		require.NoError(t, formatter.CheckReport(CheckResult{Passed: 2, Total: 2}))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Nil(t, resp.Error)
	})

	t.Run("failures", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf}

		require.NoError(t, formatter.CheckReport(CheckResult{Passed: 1, Failed: 1, Total: 2}))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
		assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)
		assert.NotNil(t, resp.Data)
	})
}

func TestOutputFormatter_CheckReportText(t *testing.T) {
	tests := []struct {
		name   string
		result CheckResult
		want   string
	}{
		{
			name:   "empty",
			result: CheckResult{},
			want:   "No scenarios found.\n",
		},
		{
			name:   "all_passed",
			result: CheckResult{Passed: 2, Total: 2},
			want:   "\nCheck Summary: 2 passed, 0 failed, 2 total\n✓ All scenarios passed\n",
		},
		{
			name:   "some_failed",
			result: CheckResult{Passed: 1, Failed: 1, Total: 2},
			want:   "\nCheck Summary: 1 passed, 1 failed, 2 total\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}

			require.NoError(t, formatter.CheckReport(tt.result))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_ScenarioLine(t *testing.T) {
	tests := []struct {
		name string
		sr   ScenarioResult
		want string
	}{
		{
			name: "passed",
			sr:   ScenarioResult{Name: "because_five", Pass: true, Golden: GoldenMatch},
			want: "✓ because_five\n",
		},
		{
			name: "golden_updated",
			sr:   ScenarioResult{Name: "because_five", Pass: true, Golden: GoldenUpdated},
			want: "✓ because_five (golden updated)\n",
		},
		{
			name: "failed",
			sr: ScenarioResult{Name: "two_failures", Errors: []string{
				"steps[3]: want outcome ok, got aggregate",
				"failure_count: want 1, got 2",
			}},
			want: "✗ two_failures\n  steps[3]: want outcome ok, got aggregate\n  failure_count: want 1, got 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}

			formatter.ScenarioLine(tt.sr)
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("json_writes_nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf}

		formatter.ScenarioLine(ScenarioResult{Name: "x", Pass: true})
		assert.Empty(t, buf.String())
	})
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Loading %s", "two_failures.yaml")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Loading two_failures.yaml")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("diagnostic")

	assert.Empty(t, out.String())
	assert.Equal(t, "diagnostic\n", errOut.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad dir")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "scan", errors.New("denied")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "bad dir", NewExitError(ExitCommandError, "bad dir").Error())

	cause := errors.New("denied")
	err := WrapExitError(ExitCommandError, "scan failed", cause)
	assert.Equal(t, "scan failed: denied", err.Error())
	assert.ErrorIs(t, err, cause)
}
