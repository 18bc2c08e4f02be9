package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up under the tooling directory.
const DefaultConfigName = "paramtools.yaml"

// Config holds the settings shared by the schema, policy and validation tools.
type Config struct {
	// RepoRoot is resolved at startup from flags/env, never read from the file.
	RepoRoot string `yaml:"-" toml:"-"`

	// Repo-relative directories
	PacksDir   string `yaml:"packs_dir" toml:"packs_dir"`
	ToolingDir string `yaml:"tooling_dir" toml:"tooling_dir"`

	Schema   SchemaConfig   `yaml:"schema" toml:"schema"`
	Policy   PolicyConfig   `yaml:"policy" toml:"policy"`
	Validate ValidateConfig `yaml:"validate" toml:"validate"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// SchemaConfig controls the identity stamped on exported schema documents.
type SchemaConfig struct {
	Draft  string `yaml:"draft" toml:"draft"`
	IDBase string `yaml:"id_base" toml:"id_base"` // $id prefix, ends with "/"
}

// PolicyConfig lists the folder rules used by the disk-space policy updater.
// Rules are evaluated in order; the first one matching a path segment wins.
type PolicyConfig struct {
	Rules []PolicyRule `yaml:"rules" toml:"rules"`
}

// PolicyRule maps a set of folder names to a required free-space threshold.
type PolicyRule struct {
	Name           string   `yaml:"name" toml:"name"`
	Folders        []string `yaml:"folders" toml:"folders"`
	RequiredFreeGB int      `yaml:"required_free_gb" toml:"required_free_gb"`
}

// ValidateConfig configures schema reference resolution and pack discovery.
type ValidateConfig struct {
	HTTPTimeout     string            `yaml:"http_timeout" toml:"http_timeout"`
	ToolingPrefix   string            `yaml:"tooling_prefix" toml:"tooling_prefix"`
	URLAliases      map[string]string `yaml:"url_aliases" toml:"url_aliases"` // remote URL -> repo-relative file
	ExcludeSegments []string          `yaml:"exclude_segments" toml:"exclude_segments"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PacksDir:   "packs",
		ToolingDir: "tooling",

		Schema: SchemaConfig{
			Draft:  "https://json-schema.org/draft/2020-12/schema",
			IDBase: "https://example.invalid/openscope-params/tooling/",
		},

		Policy: PolicyConfig{
			Rules: []PolicyRule{
				{
					Name:           "imaging",
					Folders:        []string{"imaging"},
					RequiredFreeGB: 1000,
				},
				{
					Name: "behavior",
					Folders: []string{
						"behavior",
						"behavior-videos",
						"behavior_videos",
						"behaviorvideos",
						"behavior-video",
						"behavior_video",
					},
					RequiredFreeGB: 10,
				},
			},
		},

		Validate: ValidateConfig{
			HTTPTimeout:   "30s",
			ToolingPrefix: "tooling/",
			URLAliases: map[string]string{
				"https://raw.githubusercontent.com/AllenNeuralDynamics/openscope-params/main/tooling/model_launcher.schema.json": "tooling/model_launcher.schema.json",
			},
			ExcludeSegments: []string{"schemas"},
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the config location for a repository root.
func DefaultPath(repoRoot string) string {
	return filepath.Join(repoRoot, "tooling", DefaultConfigName)
}

// Load loads configuration from a YAML or TOML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Environment variables recognised by applyEnvOverrides.
const (
	EnvRepoRoot    = "PARAMTOOLS_REPO_ROOT"
	EnvPacksDir    = "PARAMTOOLS_PACKS_DIR"
	EnvHTTPTimeout = "PARAMTOOLS_HTTP_TIMEOUT"
	EnvLogLevel    = "PARAMTOOLS_LOG_LEVEL"
	EnvLogFormat   = "PARAMTOOLS_LOG_FORMAT"
)

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvPacksDir)); v != "" {
		c.PacksDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHTTPTimeout)); v != "" {
		c.Validate.HTTPTimeout = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Logging.Format = v
	}
}

// Check reports the first invalid setting.
func (c *Config) Check() error {
	if strings.TrimSpace(c.PacksDir) == "" {
		return fmt.Errorf("packs_dir is required")
	}
	if strings.TrimSpace(c.ToolingDir) == "" {
		return fmt.Errorf("tooling_dir is required")
	}
	if c.Schema.IDBase != "" && !strings.HasSuffix(c.Schema.IDBase, "/") {
		return fmt.Errorf("schema.id_base must end with '/': %q", c.Schema.IDBase)
	}
	for i, rule := range c.Policy.Rules {
		if len(rule.Folders) == 0 {
			return fmt.Errorf("policy.rules[%d] (%s): folders list is required", i, rule.Name)
		}
		if rule.RequiredFreeGB <= 0 {
			return fmt.Errorf("policy.rules[%d] (%s): required_free_gb must be positive", i, rule.Name)
		}
	}
	if _, err := time.ParseDuration(c.Validate.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid validate.http_timeout %q: %w", c.Validate.HTTPTimeout, err)
	}
	if _, ok := ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (valid: console, json)", c.Logging.Format)
	}
	return nil
}

// GetHTTPTimeout returns the remote schema fetch timeout. Zero disables it.
func (c *Config) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.Validate.HTTPTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// PacksRoot returns the absolute-or-repo-joined packs directory.
func (c *Config) PacksRoot() string {
	return c.resolve(c.PacksDir)
}

// ToolingRoot returns the directory schema documents are written to.
func (c *Config) ToolingRoot() string {
	return c.resolve(c.ToolingDir)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RepoRoot, p)
}

// FindRepoRoot walks upward from start looking for a directory that contains
// a "tooling" folder. It returns start when none is found.
func FindRepoRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, "tooling")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
