// Command validate-packs checks parameter packs against the schema each one
// declares in $schema, and every launcher-module pipeline entry against its
// module's exported schema.
//
// Usage:
//
//	validate-packs [--param FILE | --root DIR] [--repo-root DIR] [--config FILE]
//	validate-packs describe PACK
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"openscope-params/internal/cli"
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/logging"
	"openscope-params/internal/metrics"
	"openscope-params/internal/model"
	"openscope-params/internal/report"
	"openscope-params/internal/validate"
)

const toolName = "validate-packs"

func main() {
	os.Exit(cli.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var (
		opts  cli.Options
		param string
		root  string
	)

	cmd := &cobra.Command{
		Use:   toolName,
		Short: "Validate parameter packs against their declared schemas",
		Long: `Validates one pack (--param) or every *.json pack under a directory (--root,
default <repo>/packs; paths with a "schemas" segment are skipped). Prints one
OK or FAIL line per pack and exits 1 if any pack failed.

The check is shallow: required keys must be present and non-null, and declared
property types must match. Pipeline entries of type launcher_module are checked
against module_schema, or else tooling/model_<module_path>.schema.json.
On a fresh checkout run export-schemas first so those files exist.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if param != "" && root != "" {
				return fmt.Errorf("--param and --root are mutually exclusive")
			}
			env, err := opts.Setup(toolName)
			if err != nil {
				return err
			}
			v, err := newValidator(env)
			if err != nil {
				return err
			}
			out := report.New(cmd.OutOrStdout())

			var paths []string
			if param != "" {
				abs, err := filepath.Abs(param)
				if err != nil {
					return err
				}
				paths = []string{abs}
			} else {
				dir := env.Config.PacksRoot()
				if root != "" {
					if dir, err = filepath.Abs(root); err != nil {
						return err
					}
				}
				paths, err = validate.Discover(dir, env.Config.Validate.ExcludeSegments)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					out.NoPacks(dir)
					return env.Finish(0)
				}
			}

			sum := v.Run(cmd.Context(), paths, func(res validate.Result) {
				out.Result(res)
				if res.Err != nil {
					env.Metrics.Pack(metrics.OutcomeFailed)
				} else {
					env.Metrics.Pack(metrics.OutcomeOK)
				}
			})
			return env.Finish(sum.ExitCode())
		},
	}

	opts.AddFlags(cmd.PersistentFlags())
	cmd.Flags().StringVar(&param, "param", "", "Validate a single pack file")
	cmd.Flags().StringVar(&root, "root", "", "Validate every pack under this directory (default: <repo>/packs)")
	cmd.AddCommand(newDescribeCmd())
	return cmd
}

func newValidator(env *cli.Env) (*validate.Validator, error) {
	cfg := env.Config
	tooling := cfg.ToolingRoot()
	modules, err := validate.LoadModuleSchemas(tooling)
	if err != nil {
		return nil, err
	}
	env.Loggers.Get(logging.CategoryValidate).Debug("module schemas loaded", zap.Int("modules", len(modules)))

	return &validate.Validator{
		Resolver: &validate.Resolver{
			RepoRoot:      cfg.RepoRoot,
			ToolingPrefix: cfg.Validate.ToolingPrefix,
			ToolingDir:    tooling,
			IDBase:        cfg.Schema.IDBase,
			Aliases:       cfg.Validate.URLAliases,
			Client:        &http.Client{Timeout: cfg.GetHTTPTimeout()},
			Log:           env.Loggers.Get(logging.CategoryResolve),
		},
		Modules: modules,
		Log:     env.Loggers.Get(logging.CategoryValidate),
	}, nil
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe PACK",
		Short: "Show how each pipeline entry of a pack is interpreted",
		Long: `Decodes the pack and each registered module's parameters into the parameter
models, listing keys the models do not declare. Nothing is validated against
schema files and the exit code is 0 for any readable JSON object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jsondoc.ReadObjectFile(args[0])
			if err != nil {
				return err
			}
			report.New(cmd.OutOrStdout()).Describe(args[0], validate.Describe(doc, model.Default))
			return nil
		},
	}
}
