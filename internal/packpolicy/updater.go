package packpolicy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"openscope-params/internal/diff"
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/logging"
	"openscope-params/internal/packs"
)

// Stats are the counters reported at the end of a run.
type Stats struct {
	Scanned int
	Updated int
	Skipped int
}

func (s Stats) String() string {
	return fmt.Sprintf("Scanned %d pack(s); updated %d; skipped %d.", s.Scanned, s.Updated, s.Skipped)
}

// Updater applies a Policy to every pack under a root.
type Updater struct {
	Policy *Policy
	// DryRun prints a diff for each pack that would change instead of
	// writing it.
	DryRun bool
	// Out receives dry-run diffs.
	Out io.Writer
	Log *zap.Logger
}

// Run walks root in lexical order. Unclassified packs are not read.
// Malformed packs count as skipped; only a missing root or a failed write
// aborts the run.
func (u *Updater) Run(root string) (Stats, error) {
	log := logging.OrNop(u.Log)

	files, err := packs.Discover(root, nil)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, f := range files {
		gb, ok := u.Policy.Classify(f.Rel)
		if !ok {
			continue
		}
		stats.Scanned++

		changed, err := u.updateFile(f, gb)
		if err != nil {
			var we *writeError
			if errors.As(err, &we) {
				return stats, err
			}
			log.Warn("skipping pack", zap.String("path", f.Rel), zap.Error(err))
			stats.Skipped++
			continue
		}
		if changed {
			stats.Updated++
			rule, _ := u.Policy.RuleName(f.Rel)
			log.Info("updated pack", zap.String("path", f.Rel), zap.String("rule", rule), zap.Int("required_free_gb", gb), zap.Bool("dry_run", u.DryRun))
		} else {
			log.Debug("pack already compliant", zap.String("path", f.Rel))
		}
	}
	return stats, nil
}

type writeError struct {
	path string
	err  error
}

func (e *writeError) Error() string { return fmt.Sprintf("write %s: %v", e.path, e.err) }
func (e *writeError) Unwrap() error { return e.err }

func (u *Updater) updateFile(f packs.File, gb int) (bool, error) {
	original, err := os.ReadFile(f.Path)
	if err != nil {
		return false, err
	}
	doc, err := jsondoc.DecodeObject(original)
	if err != nil {
		return false, err
	}
	changed, err := UpdatePack(doc, gb)
	if err != nil || !changed {
		return false, err
	}

	rendered, err := jsondoc.MarshalIndent(doc)
	if err != nil {
		return false, err
	}
	if u.DryRun {
		if u.Out != nil {
			fmt.Fprint(u.Out, diff.Compute(f.Rel, string(original), string(rendered)).Unified())
		}
		return true, nil
	}
	if err := os.WriteFile(f.Path, rendered, 0644); err != nil {
		return false, &writeError{path: f.Path, err: err}
	}
	return true, nil
}
