package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"openscope-params/internal/model"
	"openscope-params/internal/packs"
	"openscope-params/internal/validate"
)

// A bytes.Buffer is not a terminal, so labels render without escapes.

func TestPrinter_Result(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Result(validate.Result{Path: "packs/a.json"})
	p.Result(validate.Result{Path: "packs/b.json", Err: &validate.Error{Key: "user_id", Reason: "missing required key"}})
	p.Result(validate.Result{Path: "packs/c.json", Err: errors.New("boom")})

	assert.Equal(t, "OK  packs/a.json\n"+
		"FAIL packs/b.json: missing required key \"user_id\"\n"+
		"FAIL packs/c.json: boom\n", buf.String())
}

func TestPrinter_Notices(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.NoPacks("/repo/packs")
	p.Stale("model_launcher.schema.json")
	p.Line("Scanned %d pack(s)", 3)

	assert.Equal(t, "No JSON pack files found under: /repo/packs\n"+
		"STALE model_launcher.schema.json\n"+
		"Scanned 3 pack(s)\n", buf.String())
}

func TestPrinter_Models(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Models(model.Default)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "launcher "))
	assert.True(t, strings.HasPrefix(lines[1], "disk_space_check "))
	assert.Contains(t, lines[1], "Check that the session volume has enough free space")
}

func TestPrinter_Describe(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Describe("pack.json", validate.PackInfo{
		Schema: "tooling/model_launcher.schema.json",
		Extra:  []string{"rig_notes"},
		Entries: []validate.EntryInfo{
			{Pipeline: "pre_acquisition_pipeline", Index: 0, Kind: packs.KindModule, Name: "disk_space_check",
				ModuleType: "launcher_module", Model: "model.DiskSpaceCheckParams", Extra: []string{"note"}},
			{Pipeline: "pre_acquisition_pipeline", Index: 1, Kind: packs.KindLegacy, Name: "code/x.py", Problem: "bad"},
		},
	})

	assert.Equal(t, "pack.json\n"+
		"  $schema: tooling/model_launcher.schema.json\n"+
		"  extra keys: rig_notes\n"+
		"  pre_acquisition_pipeline[0] module disk_space_check (launcher_module) -> model.DiskSpaceCheckParams\n"+
		"    extra keys: note\n"+
		"  pre_acquisition_pipeline[1] legacy code/x.py\n"+
		"    problem: bad\n", buf.String())
}
