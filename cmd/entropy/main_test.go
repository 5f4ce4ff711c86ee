package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gilah-EnE/entropy/internal/analysis"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEntropyFromStdin(t *testing.T) {
	out, err := execute(t, "\x00\x00\x01\x01\x00\x00\x01\x01")
	require.NoError(t, err)
	assert.Equal(t, "Shannon Entropy (approximate bits per byte): 1\n", out)
}

func TestEntropyMetricAndEcho(t *testing.T) {
	out, err := execute(t, "aaaa", "--metric", "--echo")
	require.NoError(t, err)
	assert.Equal(t, "Input from stdin: \"aaaa\"\n"+
		"Shannon Entropy (approximate bits per byte): 0\n"+
		"Shannon Metric Entropy (per byte position): 0\n", out)
}

func TestEntropyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 1, 1, 2, 2, 3, 3}, 0o644))

	out, err := execute(t, "", "--exact", path)
	require.NoError(t, err)
	assert.Equal(t, "Shannon Entropy (approximate bits per byte): 2\n", out)
}

func TestEntropyEmptyInput(t *testing.T) {
	_, err := execute(t, "")
	assert.ErrorIs(t, err, errEmptyInput)
}

func TestEntropyInvalidConfig(t *testing.T) {
	_, err := execute(t, "abc", "--log-format", "xml")
	assert.Error(t, err)
}

func TestReportJSON(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 100)
	out, err := execute(t, text, "report", "--json", "--block-size", "1024")
	require.NoError(t, err)

	var report struct {
		Size           int     `json:"size"`
		Entropy        float64 `json:"entropy"`
		Classification string  `json:"classification"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, len(text), report.Size)
	assert.Less(t, report.Entropy, 5.0)
	assert.Equal(t, analysis.NoEncryption.String(), report.Classification)
}

func TestReportTable(t *testing.T) {
	out, err := execute(t, strings.Repeat("abcd", 512), "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Entropy (approximate):")
	assert.Contains(t, out, "Result:")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
