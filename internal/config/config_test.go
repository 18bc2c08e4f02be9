package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "packs", cfg.PacksDir)
	assert.Equal(t, "tooling", cfg.ToolingDir)
	require.Len(t, cfg.Policy.Rules, 2)
	assert.Equal(t, 1000, cfg.Policy.Rules[0].RequiredFreeGB)
	assert.Equal(t, 10, cfg.Policy.Rules[1].RequiredFreeGB)
	assert.Contains(t, cfg.Policy.Rules[1].Folders, "behavior_videos")
	assert.Equal(t, []string{"schemas"}, cfg.Validate.ExcludeSegments)
	require.NoError(t, cfg.Check())
}

func TestLoad_CommittedConfigMatchesDefaults(t *testing.T) {
	for _, env := range []string{EnvPacksDir, EnvHTTPTimeout, EnvLogLevel, EnvLogFormat} {
		t.Setenv(env, "")
	}
	cfg, err := Load(filepath.Join("..", "..", "tooling", DefaultConfigName))
	require.NoError(t, err)
	require.NoError(t, cfg.Check())
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvPacksDir, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().PacksDir, cfg.PacksDir)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv(EnvPacksDir, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "tooling", DefaultConfigName)
	cfg := DefaultConfig()
	cfg.PacksDir = "param_packs"
	cfg.Policy.Rules = []PolicyRule{{Name: "ephys", Folders: []string{"ephys"}, RequiredFreeGB: 500}}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "param_packs", loaded.PacksDir)
	require.Len(t, loaded.Policy.Rules, 1)
	assert.Equal(t, "ephys", loaded.Policy.Rules[0].Name)
	assert.Equal(t, 500, loaded.Policy.Rules[0].RequiredFreeGB)
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv(EnvHTTPTimeout, "")
	path := filepath.Join(t.TempDir(), "paramtools.toml")
	data := `packs_dir = "rig_packs"

[validate]
http_timeout = "5s"

[[policy.rules]]
name = "imaging"
folders = ["imaging", "two_photon"]
required_free_gb = 2000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rig_packs", cfg.PacksDir)
	assert.Equal(t, 5*time.Second, cfg.GetHTTPTimeout())
	require.Len(t, cfg.Policy.Rules, 1)
	assert.Equal(t, []string{"imaging", "two_photon"}, cfg.Policy.Rules[0].Folders)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packs_dir: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Check(t *testing.T) {
	t.Run("empty packs dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PacksDir = " "
		assert.Error(t, cfg.Check())
	})
	t.Run("rule without folders", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Policy.Rules = append(cfg.Policy.Rules, PolicyRule{Name: "empty", RequiredFreeGB: 1})
		assert.ErrorContains(t, cfg.Check(), "folders")
	})
	t.Run("non-positive threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Policy.Rules[0].RequiredFreeGB = 0
		assert.ErrorContains(t, cfg.Check(), "required_free_gb")
	})
	t.Run("bad timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Validate.HTTPTimeout = "soon"
		assert.Error(t, cfg.Check())
	})
	t.Run("bad id base", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Schema.IDBase = "https://example.invalid/no-slash"
		assert.Error(t, cfg.Check())
	})
	t.Run("bad log format", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Check())
	})
}

func TestPacksRootAndToolingRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepoRoot = filepath.Join("repo", "root")
	assert.Equal(t, filepath.Join("repo", "root", "packs"), cfg.PacksRoot())
	assert.Equal(t, filepath.Join("repo", "root", "tooling"), cfg.ToolingRoot())

	abs := t.TempDir()
	cfg.PacksDir = abs
	assert.Equal(t, abs, cfg.PacksRoot())
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tooling"), 0755))
	deep := filepath.Join(root, "packs", "imaging", "rig1")
	require.NoError(t, os.MkdirAll(deep, 0755))

	got := FindRepoRoot(deep)
	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	lonely := t.TempDir()
	assert.Equal(t, lonely, FindRepoRoot(lonely))
}

func TestGetHTTPTimeout_Fallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validate.HTTPTimeout = "garbage"
	assert.Equal(t, 30*time.Second, cfg.GetHTTPTimeout())
	cfg.Validate.HTTPTimeout = "0"
	assert.Equal(t, time.Duration(0), cfg.GetHTTPTimeout())
}
