package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	input := filepath.Join(tempDir, "input.eq")
	err := os.WriteFile(input, []byte("{\n  name = [1, 2],\n  nested = {x = -3.5e2}\n}\n"), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command("go", "run", "../../main.go", input, "-o", outputFile, "-f", "json", "--json-numbers")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	generated, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(generated, &decoded))
	assert.Equal(t, []any{float64(1), float64(2)}, decoded["name"])
	assert.Equal(t, map[string]any{"x": float64(-350)}, decoded["nested"])
	assert.Contains(t, string(generated), `"name": [`)
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("{a=1,b=2}")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, "{'a': '1', 'b': '2'}\n", stdout.String())
}

// TestCLI_DataFormat tests that data output can be fed back in
func TestCLI_DataFormat(t *testing.T) {
	input := "{z=[1,{y=2}],a={}}"

	cmd := exec.Command("go", "run", "../../main.go", "-f", "data", "--indent", "0")
	cmd.Stdin = strings.NewReader(input)
	first, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "{z=[1, {y=2}], a={}}\n", string(first))

	cmd = exec.Command("go", "run", "../../main.go", "-f", "data", "--indent", "0")
	cmd.Stdin = bytes.NewReader(first)
	second, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

// TestCLI_SyntaxError tests the error message and exit status for bad input
func TestCLI_SyntaxError(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("{a=1;}")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Syntax error at line 1, column 5: unexpected character ';'")
}

// TestCLI_ConfigFile tests that a config file sets the output format
func TestCLI_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "eqdata.yml")
	err := os.WriteFile(configPath, []byte("output:\n  format: yaml\n  key_case: kebab\n"), 0644)
	require.NoError(t, err)

	cmd := exec.Command("go", "run", "../../main.go", "-c", configPath)
	cmd.Stdin = strings.NewReader("{max_size=10, list=[1]}")
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "max-size: 10\nlist:\n"), "got %q", out)
	assert.Contains(t, string(out), "- 1")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	out, err := exec.Command("go", "run", "../../main.go", "--version").Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "eqdata version")
}
