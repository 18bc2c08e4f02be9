// Command export-schemas writes a JSON Schema for the launcher and for every
// registered module into the tooling directory.
//
// Usage:
//
//	export-schemas [--check] [--list] [--repo-root DIR] [--config FILE]
package main

//go:generate go run . --repo-root ../..

import (
	"os"

	"github.com/spf13/cobra"

	"openscope-params/internal/cli"
	"openscope-params/internal/exporter"
	"openscope-params/internal/logging"
	"openscope-params/internal/model"
	"openscope-params/internal/report"
)

const toolName = "export-schemas"

func main() {
	os.Exit(cli.Execute(newRootCmd(model.Default)))
}

func newRootCmd(reg *model.Registry) *cobra.Command {
	var (
		opts  cli.Options
		check bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   toolName,
		Short: "Export parameter-model JSON Schemas into tooling/",
		Long: `Renders the launcher parameter model and every module parameter model into
tooling/model_<name>.schema.json. Files are overwritten; reruns are byte-identical.

With --check nothing is written: the command lists schema files that are missing
or out of date and exits 1 if there are any.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := report.New(cmd.OutOrStdout())
			if list {
				out.Models(reg)
				return nil
			}

			env, err := opts.Setup(toolName)
			if err != nil {
				return err
			}
			exOpts := exporter.Options{
				ToolingDir: env.Config.ToolingRoot(),
				IDBase:     env.Config.Schema.IDBase,
				Draft:      env.Config.Schema.Draft,
				Logger:     env.Loggers.Get(logging.CategoryExport),
			}

			if check {
				stale, err := exporter.Check(reg, exOpts)
				if err != nil {
					return err
				}
				for _, name := range stale {
					out.Stale(name)
				}
				if len(stale) > 0 {
					return env.Finish(1)
				}
				out.Line("Schemas up to date.")
				return env.Finish(0)
			}

			res, err := exporter.Export(reg, exOpts)
			if err != nil {
				return err
			}
			env.Metrics.SchemasWritten(len(res.Written))
			out.Line("Export complete.")
			return env.Finish(0)
		},
	}

	opts.AddFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&check, "check", false, "Report stale or missing schema files without writing")
	cmd.Flags().BoolVar(&list, "list", false, "List registered models and exit")
	return cmd
}
