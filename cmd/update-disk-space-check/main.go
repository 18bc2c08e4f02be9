// Command update-disk-space-check brings the disk_space_check entry of every
// imaging and behavior pack in line with the folder's free-space policy.
//
// Usage:
//
//	update-disk-space-check [--dry-run] [--packs-root DIR] [--repo-root DIR] [--config FILE]
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"openscope-params/internal/cli"
	"openscope-params/internal/logging"
	"openscope-params/internal/metrics"
	"openscope-params/internal/packpolicy"
	"openscope-params/internal/report"
)

const toolName = "update-disk-space-check"

func main() {
	os.Exit(cli.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var (
		opts      cli.Options
		dryRun    bool
		packsRoot string
	)

	cmd := &cobra.Command{
		Use:   toolName,
		Short: "Apply the disk-space policy to imaging and behavior packs",
		Long: `Walks every *.json pack under the packs root. Packs under an imaging folder
require 1000 GB free, packs under a behavior folder 10 GB (rules are configurable).
The first disk_space_check entry of pre_acquisition_pipeline is updated, or one is
inserted before wait_for_user_input, or appended. Unchanged packs are not rewritten.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.Setup(toolName)
			if err != nil {
				return err
			}

			root := env.Config.PacksRoot()
			if packsRoot != "" {
				if root, err = filepath.Abs(packsRoot); err != nil {
					return err
				}
			}

			u := &packpolicy.Updater{
				Policy: packpolicy.NewPolicy(env.Config.Policy.Rules),
				DryRun: dryRun,
				Out:    cmd.OutOrStdout(),
				Log:    env.Loggers.Get(logging.CategoryPolicy),
			}
			stats, err := u.Run(root)
			if err != nil {
				return env.Abort(err)
			}

			env.Metrics.Packs(metrics.OutcomeUpdated, stats.Updated)
			env.Metrics.Packs(metrics.OutcomeSkipped, stats.Skipped)
			env.Metrics.Packs(metrics.OutcomeUnchanged, stats.Scanned-stats.Updated-stats.Skipped)
			report.New(cmd.OutOrStdout()).Line("%s", stats)
			return env.Finish(0)
		},
	}

	opts.AddFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print a diff for each pack that would change instead of writing")
	cmd.Flags().StringVar(&packsRoot, "packs-root", "", "Packs directory (default: <repo>/packs)")
	return cmd
}
