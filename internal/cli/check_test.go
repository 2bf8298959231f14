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

const passingScenario = `
name: passing
description: One passing assertion
engine_id: engine-cli
steps:
  - op: because
  - op: it
    label: works
  - op: dispose
    want: ok
`

const failingScenario = `
name: failing
description: Want does not match
steps:
  - op: because
  - op: it
    label: broken
    fail: boom
  - op: dispose
    want: ok
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func executeCheck(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCheckCommandMissingArgs(t *testing.T) {
	_, err := executeCheck(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestCheckCommandNonExistentDir(t *testing.T) {
	out, err := executeCheck(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "scenarios directory not found")
}

func TestCheckCommandEmptyDir(t *testing.T) {
	out, err := executeCheck(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestCheckCommandPassing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)

	out, err := executeCheck(t, "text", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ passing")
	assert.Contains(t, out, "Check Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "All scenarios passed")
}

func TestCheckCommandFailing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)
	writeFile(t, dir, "failing.yaml", failingScenario)

	out, err := executeCheck(t, "text", dir)
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ failing")
	assert.Contains(t, out, "want outcome ok, got single_failure")
	assert.Contains(t, out, "Check Summary: 1 passed, 1 failed, 2 total")
}

func TestCheckCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nsteps: []\n")

	out, err := executeCheck(t, "text", dir)
	require.Error(t, err)

	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestCheckCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)
	writeFile(t, dir, "failing.yaml", failingScenario)

	out, err := executeCheck(t, "text", dir, "--filter", "pass*")
	require.NoError(t, err)

	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "failing")
}

func TestCheckCommandInvalidFilter(t *testing.T) {
	_, err := executeCheck(t, "text", t.TempDir(), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)
	writeFile(t, dir, "failing.yaml", failingScenario)

	out, err := executeCheck(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)

	// Files are walked in lexical order
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Equal(t, "failing", resp.Data.Scenarios[0].Name)
	assert.Equal(t, "single_failure", resp.Data.Scenarios[0].Final)
	assert.Equal(t, "passing", resp.Data.Scenarios[1].Name)
	assert.Equal(t, GoldenMissing, resp.Data.Scenarios[1].Golden)
}

func TestCheckCommandGoldenUpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)

	out, err := executeCheck(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ passing (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "passing.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"engine_id":"engine-cli","scenario_name":"passing","trace":[`+
			`{"op":"because","outcome":"ok","seq":1,"state":"act_run"},`+
			`{"label":"works","op":"it","outcome":"passed","seq":2,"state":"assertion_started"},`+
			`{"op":"dispose","outcome":"ok","seq":3,"state":"finalized"}]}`,
		string(golden))

	out, err = executeCheck(t, "json", dir)
	require.NoError(t, err)

	var resp struct {
		Data CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, GoldenMatch, resp.Data.Scenarios[0].Golden)
}

func TestCheckCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "passing.yaml", passingScenario)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0755))
	writeFile(t, filepath.Join(dir, "golden"), "passing.golden", `{"stale":true}`)

	out, err := executeCheck(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestCheckCommandRepositoryScenarios(t *testing.T) {
	out, err := executeCheck(t, "text", "../../testdata/scenarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, "0 failed")
}

func TestCheckCommandRepositoryGoldens(t *testing.T) {
	out, err := executeCheck(t, "json", "../../testdata/scenarios")
	require.NoError(t, err, out)

	var resp struct {
		Data CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	golden := make(map[string]string)
	for _, sr := range resp.Data.Scenarios {
		golden[sr.Name] = sr.Golden
	}
	for _, name := range []string{"because_five", "it_before_because", "missing_it", "two_failures"} {
		assert.Equal(t, GoldenMatch, golden[name], "scenario %s", name)
	}
}

func TestCheckCommandRejectsTraversalName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeFile(t, dir, "escape.yaml", `
name: ../../escaped
description: Name points outside the golden directory
steps:
  - op: because
  - op: it
    label: works
  - op: dispose
`)

	out, err := executeCheck(t, "text", dir, "--update")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ escape.yaml")
	assert.Contains(t, out, "must be a plain file name")

	_, statErr := os.Stat(filepath.Join(root, "escaped.golden"))
	assert.True(t, os.IsNotExist(statErr), "no golden written outside the golden directory")
	_, statErr = os.Stat(filepath.Join(dir, "golden"))
	assert.True(t, os.IsNotExist(statErr))
}
