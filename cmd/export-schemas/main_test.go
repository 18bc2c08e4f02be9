package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openscope-params/internal/cli"
	"openscope-params/internal/config"
	"openscope-params/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "off")
	var out bytes.Buffer
	cmd := newRootCmd(model.Default)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExport_WritesAllSchemas(t *testing.T) {
	root := t.TempDir()
	out, err := run(t, "--repo-root", root)
	require.NoError(t, err)
	assert.Equal(t, "Export complete.\n", out)

	entries, err := os.ReadDir(filepath.Join(root, "tooling"))
	require.NoError(t, err)
	assert.Len(t, entries, 16)

	data, err := os.ReadFile(filepath.Join(root, "tooling", "model_disk_space_check.schema.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Module Parameters: disk_space_check"`)
}

func TestExport_Check(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "--repo-root", root, "--check")
	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "STALE model_launcher.schema.json")
	assert.NotContains(t, out, "Usage:")
	assert.NotContains(t, out, "Error:")
	_, statErr := os.Stat(filepath.Join(root, "tooling", "model_launcher.schema.json"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = run(t, "--repo-root", root)
	require.NoError(t, err)

	out, err = run(t, "--repo-root", root, "--check")
	require.NoError(t, err)
	assert.Equal(t, "Schemas up to date.\n", out)

	path := filepath.Join(root, "tooling", "model_session_creator.schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
	out, err = run(t, "--repo-root", root, "--check")
	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Equal(t, "STALE model_session_creator.schema.json\n", out)
}

func TestExport_List(t *testing.T) {
	out, err := run(t, "--list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], model.LauncherName))
}

func TestExport_MissingLauncher(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "off")
	reg := model.NewRegistry()
	reg.MustRegister(model.Model{Name: "disk_space_check", New: func() any { return &model.DiskSpaceCheckParams{} }})

	root := t.TempDir()
	cmd := newRootCmd(reg)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--repo-root", root})
	assert.Error(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(root, "tooling", "model_disk_space_check.schema.json"))
	assert.True(t, os.IsNotExist(err))
}
