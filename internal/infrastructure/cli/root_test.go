package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/fishfix/internal/domain"
)

type runOutput struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) runOutput {
	t.Helper()
	t.Setenv(domain.ConfigEnvVar, filepath.Join(t.TempDir(), "config.yaml"))
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(Options{Stdin: strings.NewReader(stdin), Stdout: &stdout, Stderr: &stderr})
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return runOutput{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeHistory(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootFixesAndSortsIntoFile(t *testing.T) {
	dir := t.TempDir()
	in := writeHistory(t, dir, "fish_history", "- cmd: echo a:b\n  when: 200\n- cmd: echo c\n  when: 100\n")
	out := filepath.Join(dir, "fixed")

	res := execute(t, "", in, "-o", out)

	require.NoError(t, res.err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "- cmd: echo c\n  when: 100\n- cmd: \"echo a:b\"\n  when: 200\n", string(data))
	assert.Empty(t, res.stdout)
}

func TestRootWritesToStdoutWithoutOutFname(t *testing.T) {
	res := execute(t, "- cmd: b\n  when: 2\n- cmd: a\n  when: 1\n", "-")

	require.NoError(t, res.err)
	assert.Equal(t, "- cmd: a\n  when: 1\n- cmd: b\n  when: 2\n", res.stdout)
}

func TestRootAppend(t *testing.T) {
	dir := t.TempDir()
	in := writeHistory(t, dir, "new", "- cmd: pwd\n  when: 9\n")
	out := writeHistory(t, dir, "merged", "- cmd: ls\n  when: 1\n")

	res := execute(t, "", in, "--out-fname", out, "--append")

	require.NoError(t, res.err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "- cmd: ls\n  when: 1\n- cmd: pwd\n  when: 9\n", string(data))
}

func TestRootLintReportsCounts(t *testing.T) {
	dir := t.TempDir()
	in := writeHistory(t, dir, "fish_history", strings.Join([]string{
		"- cmd: a: b",
		"  when: 3",
		"- cmd: ok",
		"  when: 1",
	}, "\n"))

	res := execute(t, "", in, "--lint")

	require.NoError(t, res.err, "issues found by lint are not failures")
	assert.Contains(t, res.stdout, LabelRecords+": 2")
	assert.Contains(t, res.stdout, LabelUnparseable+": 1")
	assert.Contains(t, res.stdout, LabelUnsorted+": 1")
	assert.NotContains(t, res.stdout, MsgNoProblems)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "lint must not write files")
}

func TestRootLintCleanHistory(t *testing.T) {
	res := execute(t, "- cmd: ls\n  when: 1\n", "--lint", "-")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, MsgNoProblems)
}

func TestRootConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no files", args: nil},
		{name: "lint with output", args: []string{"x", "--lint", "-o", "out"}},
		{name: "append without output", args: []string{"x", "--append"}},
		{name: "unknown flag", args: []string{"x", "--frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(res.err, &cfgErr), "got %v", res.err)
		})
	}
}

func TestRootMissingInputIsIOError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	res := execute(t, "", missing)

	var ioErr *domain.IOError
	require.True(t, errors.As(res.err, &ioErr), "got %v", res.err)
	assert.Equal(t, missing, ioErr.Path)
}

func TestRootArchive(t *testing.T) {
	dir := t.TempDir()
	in := writeHistory(t, dir, "fish_history", "- cmd: echo a:b\n  when: 1\n")
	db := filepath.Join(dir, "archive", "history.db")

	res := execute(t, "", in, "-o", filepath.Join(dir, "out"), "--archive", db, "--verbose")

	require.NoError(t, res.err)
	_, err := os.Stat(db)
	require.NoError(t, err)
	assert.Contains(t, res.stderr, "Archived 1 new entries")
}

func TestBuildRequestFlagsOverrideConfig(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{Sort: true, ParseFix: true, FixPaths: true},
		Archive:     domain.ArchiveSettings{Path: "/var/db/history.db"},
	}

	req := buildRequest([]string{"a"}, rootFlags{noSort: true, noPathFix: true}, cfg)
	assert.False(t, req.Sort)
	assert.True(t, req.ParseFix)
	assert.False(t, req.FixPaths)
	assert.Equal(t, "/var/db/history.db", req.ArchivePath)

	req = buildRequest([]string{"a"}, rootFlags{lint: true}, cfg)
	assert.Empty(t, req.ArchivePath, "lint ignores the configured archive")

	cfg.Preferences.Sort = false
	req = buildRequest([]string{"a"}, rootFlags{}, cfg)
	assert.False(t, req.Sort)
}

func TestRenderLintSummaryEmphasis(t *testing.T) {
	var plain, bold bytes.Buffer
	stats := domain.RunStats{TotalRecords: 12345, UnparseableCount: 2}

	RenderLintSummary(&plain, stats, false)
	RenderLintSummary(&bold, stats, true)

	assert.Contains(t, plain.String(), LabelRecords+": 12,345")
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, bold.String(), "\x1b[1m2\x1b[0m")
}

func TestRenderRunSummary(t *testing.T) {
	var out bytes.Buffer
	RenderRunSummary(&out, domain.FixResult{
		Stats:        domain.RunStats{RepairedCount: 3, RepairedPaths: 2, UnsortedCount: 1},
		Records:      1500,
		BytesWritten: 2048,
		Output:       domain.StdioPath,
		Archived:     4,
	})

	assert.Contains(t, out.String(), "Wrote 1,500 records (2.0 kB) to stdout")
	assert.Contains(t, out.String(), "Repaired 3 cmd lines, 2 path items, 1 out-of-order records")
	assert.Contains(t, out.String(), "Archived 4 new entries")
}
