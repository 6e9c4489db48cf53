package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateInspectClear(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_MODE", "development")

	out, err := runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 6 tables")

	out, err = runCLI(t, "inspect")
	require.NoError(t, err)
	for _, table := range []string{"users", "subjects", "notes", "master_notes", "quiz_states", "student_analytics"} {
		assert.Contains(t, out, table)
	}

	_, err = runCLI(t, "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err = runCLI(t, "clear", "--yes")
	require.NoError(t, err)
	assert.True(t, strings.Index(out, "student_analytics") < strings.Index(out, "users"))
}

func TestRenderTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"A", "B"}, [][]string{{"x"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "+")
	assert.Empty(t, renderTable(&buf, nil, nil, nil))
}
