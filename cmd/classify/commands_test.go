package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ajharbinger/tennis-decider/internal/auth"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"classify"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestScoreCommand(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"best of three straight", []string{"score", "6-4 6-3"}, "0"},
		{"best of three decider", []string{"score", "6-4", "3-6", "7-5"}, "1"},
		{"grand slam decider", []string{"score", "--tournament", "US Open", "6-3 4-6 7-5 3-6 6-4"}, "1"},
		{"unparseable", []string{"score", "retired"}, "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runApp(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, strings.TrimSpace(stdout))
		})
	}
}

func TestScoreCommand_Explain(t *testing.T) {
	stdout, _, err := runApp(t, "score", "--explain", "-t", "Wimbledon", "7-6(5) 6-7(6) 6-4")
	require.NoError(t, err)

	var result struct {
		UniqueSets []string `yaml:"unique_sets"`
		GrandSlam  bool     `yaml:"grand_slam"`
		Label      int      `yaml:"label"`
		Reason     string   `yaml:"reason"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, []string{"7-6", "6-7", "6-4"}, result.UniqueSets)
	assert.True(t, result.GrandSlam)
	assert.Equal(t, 0, result.Label)
	assert.Equal(t, "classified", result.Reason)
}

func TestScoreCommand_MissingScore(t *testing.T) {
	_, _, err := runApp(t, "score")
	assert.Error(t, err)
}

func TestFileCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.csv")
	output := filepath.Join(dir, "classified.csv")
	require.NoError(t, os.WriteFile(input, []byte("Tournament,Score\nWimbledon,6-4 6-3 6-2\nMiami Open,6-4 3-6 7-5\n"), 0644))

	_, stderr, err := runApp(t, "file", "-i", input, "-o", output, "--workers", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Score,Tournament,Straight_Decider\n6-4 6-3 6-2,Wimbledon,0\n6-4 3-6 7-5,Miami Open,1\n", string(data))
	assert.Contains(t, stderr, "Total: 2")
	assert.Contains(t, stderr, "Decider (1): 1 (50.0%)")
}

func TestFileCommand_HTMLToYAML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "draw.html")
	page := `<table><tr><th>Event</th><th>Score</th></tr><tr><td>US Open</td><td>6–3 4–6 7–5 3–6 6–4</td></tr></table>`
	require.NoError(t, os.WriteFile(input, []byte(page), 0644))

	stdout, _, err := runApp(t, "file", "-i", input, "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "straight_decider: 1")
}

func TestFileCommand_NoScoreColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "players.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("Player\nNadal\n"), 0644))

	_, _, err := runApp(t, "file", "-i", input, "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COLUMN_NOT_FOUND")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output file on failure")
}

func TestSamplesCommand(t *testing.T) {
	stdout, _, err := runApp(t, "samples")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "TOURNAMENT"))
	assert.True(t, strings.HasSuffix(lines[3], "1"), lines[3])
	assert.True(t, strings.HasPrefix(lines[6], "None"))
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	stdout, stderr, err := runApp(t, "token", "--subject", "results-bot")
	require.NoError(t, err)
	assert.Contains(t, stderr, "expires")

	claims, err := auth.NewJWTService("cli-secret").ValidateToken(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "results-bot", claims.Subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := runApp(t, "token", "--subject", "results-bot")
	assert.Error(t, err)
}
