// Package cli holds the startup shared by the parameter tool binaries:
// persistent flags, repo-root and config resolution, loggers, the optional
// metrics textfile and exit-code handling.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"openscope-params/internal/config"
	"openscope-params/internal/logging"
	"openscope-params/internal/metrics"
)

// ErrFailed makes a command exit 1 without printing anything further; the
// command has already reported its findings.
var ErrFailed = errors.New("failed")

// Options are the flags every tool accepts.
type Options struct {
	RepoRoot    string
	ConfigPath  string
	Verbose     bool
	MetricsFile string
}

// AddFlags registers the persistent flags on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.RepoRoot, "repo-root", "", "Repository root (default: $"+config.EnvRepoRoot+" or the nearest parent with a tooling/ dir)")
	fs.StringVar(&o.ConfigPath, "config", "", "Config file, YAML or TOML (default: <repo>/tooling/"+config.DefaultConfigName+")")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
}

// ResolveRepoRoot applies flag, then environment, then an upward search from
// the working directory.
func (o *Options) ResolveRepoRoot() (string, error) {
	root := strings.TrimSpace(o.RepoRoot)
	if root == "" {
		root = strings.TrimSpace(os.Getenv(config.EnvRepoRoot))
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		root = config.FindRepoRoot(cwd)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve repo root %q: %w", root, err)
	}
	return abs, nil
}

// Env is the state a command runs with.
type Env struct {
	Config  *config.Config
	Loggers *logging.Loggers
	Metrics *metrics.Recorder
	Started time.Time

	metricsFile string
}

// Setup resolves the repo root, loads and validates the config, and builds
// the loggers. tool labels the run metrics.
func (o *Options) Setup(tool string) (*Env, error) {
	root, err := o.ResolveRepoRoot()
	if err != nil {
		return nil, err
	}

	path := o.ConfigPath
	if path == "" {
		path = config.DefaultPath(root)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.RepoRoot = root
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	loggers, err := logging.New(cfg.Logging, o.Verbose)
	if err != nil {
		return nil, err
	}
	loggers.Get(logging.CategoryConfig).Debug("configuration loaded",
		zap.String("tool", tool),
		zap.String("repo_root", root),
		zap.String("config", path),
		zap.String("packs_root", cfg.PacksRoot()),
		zap.String("tooling_root", cfg.ToolingRoot()),
	)

	env := &Env{Config: cfg, Loggers: loggers, Started: time.Now(), metricsFile: o.MetricsFile}
	if o.MetricsFile != "" {
		env.Metrics = metrics.New(tool)
	}
	return env, nil
}

// Finish writes the metrics textfile, flushes the loggers and maps a non-zero
// exit code to ErrFailed.
func (e *Env) Finish(exitCode int) error {
	defer e.Loggers.Sync()

	if e.Metrics != nil {
		e.Metrics.Finish(e.Started, exitCode)
		if err := e.Metrics.WriteFile(e.metricsFile); err != nil {
			return err
		}
		e.Loggers.Get(logging.CategoryMetrics).Debug("metrics written", zap.String("path", e.metricsFile))
	}
	if exitCode != 0 {
		return ErrFailed
	}
	return nil
}

// Abort finishes a run that failed with err. A metrics write failure is
// joined to err rather than dropped.
func (e *Env) Abort(err error) error {
	if ferr := e.Finish(1); ferr != nil && !errors.Is(ferr, ErrFailed) {
		return errors.Join(err, ferr)
	}
	return err
}

// Execute runs cmd and returns the process exit code. Errors other than
// ErrFailed are printed to the command's error stream.
func Execute(cmd *cobra.Command) int {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFailed):
		return 1
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
}
