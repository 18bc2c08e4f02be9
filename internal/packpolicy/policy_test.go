package packpolicy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"openscope-params/internal/config"
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/packs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func defaultPolicy() *Policy {
	return NewPolicy(config.DefaultConfig().Policy.Rules)
}

func TestClassify(t *testing.T) {
	p := defaultPolicy()
	tests := []struct {
		rel    string
		wantGB int
		wantOK bool
	}{
		{"imaging/rig1/pack.json", 1000, true},
		{"Imaging/pack.json", 1000, true},
		{"behavior/pack.json", 10, true},
		{"rigs/Behavior_Videos/pack.json", 10, true},
		{"behaviorvideos/pack.json", 10, true},
		{"behavior-video/pack.json", 10, true},
		{"behavior/imaging/pack.json", 1000, true},
		{"ephys/pack.json", 0, false},
		{"imaging_old/pack.json", 0, false},
		{"pack.json", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			gb, ok := p.Classify(tt.rel)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantGB, gb)
		})
	}

	name, ok := p.RuleName("behavior/imaging/pack.json")
	assert.True(t, ok)
	assert.Equal(t, "imaging", name)
}

func decodePipeline(t *testing.T, raw string) []any {
	t.Helper()
	v, err := jsondoc.Decode([]byte(raw))
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	return arr
}

func modulePaths(pipeline []any) []string {
	out := make([]string, 0, len(pipeline))
	for _, item := range pipeline {
		e := packs.ParseEntry(item)
		out = append(out, e.Kind.String()+":"+e.Name)
	}
	return out
}

func compact(t *testing.T, v any) string {
	t.Helper()
	data, err := jsondoc.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestEnsureDiskSpaceCheck_InsertsBeforeSentinel(t *testing.T) {
	pipeline := decodePipeline(t, `[
		"session_creator",
		{"module_path": "metadata_subject_fetch"},
		{"module_type": "launcher_module", "module_path": "wait_for_user_input"},
		{"module_path": "wait_for_user_input"}
	]`)

	got := EnsureDiskSpaceCheck(pipeline, 10)

	want := []string{
		"shorthand:session_creator",
		"module:metadata_subject_fetch",
		"module:disk_space_check",
		"module:wait_for_user_input",
		"module:wait_for_user_input",
	}
	if diff := cmp.Diff(want, modulePaths(got)); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t,
		`{"module_type":"launcher_module","module_path":"disk_space_check","module_parameters":{"required_free_gb":10}}`,
		compact(t, got[2]))
}

func TestEnsureDiskSpaceCheck_AppendsWithoutSentinel(t *testing.T) {
	pipeline := decodePipeline(t, `["session_creator", {"module_type": "script_module", "module_path": "wait_for_user_input"}]`)
	got := EnsureDiskSpaceCheck(pipeline, 1000)
	require.Len(t, got, 3)
	assert.Equal(t, "module:disk_space_check", modulePaths(got)[2])

	empty := EnsureDiskSpaceCheck(nil, 1000)
	require.Len(t, empty, 1)
}

func TestEnsureDiskSpaceCheck_UpdatesFirstExisting(t *testing.T) {
	pipeline := decodePipeline(t, `[
		{"module_path": "disk_space_check", "module_parameters": {"required_free_bytes": 5, "required_free_gb": 1, "allow_override": true}},
		{"module_path": "disk_space_check", "module_parameters": {"required_free_gb": 2}},
		{"module_path": "wait_for_user_input"}
	]`)

	got := EnsureDiskSpaceCheck(pipeline, 1000)
	require.Len(t, got, 3)
	assert.Equal(t,
		`{"module_path":"disk_space_check","module_parameters":{"required_free_gb":1000,"allow_override":true}}`,
		compact(t, got[0]))
	assert.Equal(t,
		`{"module_path":"disk_space_check","module_parameters":{"required_free_gb":2}}`,
		compact(t, got[1]))
}

func TestEnsureDiskSpaceCheck_NullModuleTypeUpdatedInPlaceNotDuplicated(t *testing.T) {
	pipeline := decodePipeline(t, `[{"module_type": null, "module_path": "disk_space_check", "module_parameters": {"required_free_gb": 1}}]`)

	got := EnsureDiskSpaceCheck(pipeline, 10)

	require.Len(t, got, 1)
	assert.Equal(t,
		`{"module_type":null,"module_path":"disk_space_check","module_parameters":{"required_free_gb":10}}`,
		compact(t, got[0]))
}

func TestEnsureDiskSpaceCheck_ReplacesNonObjectParams(t *testing.T) {
	pipeline := decodePipeline(t, `[{"module_path": "disk_space_check", "module_parameters": "big"}]`)
	got := EnsureDiskSpaceCheck(pipeline, 10)
	assert.Equal(t,
		`{"module_path":"disk_space_check","module_parameters":{"required_free_gb":10}}`,
		compact(t, got[0]))
}

func TestEnsureDiskSpaceCheck_IgnoresScriptAndLegacyEntries(t *testing.T) {
	pipeline := decodePipeline(t, `[
		{"module_type": "script_module", "module_path": "disk_space_check"},
		{"type": "repo_module", "repo_relative_path": "disk_space_check"},
		"disk_space_check"
	]`)
	got := EnsureDiskSpaceCheck(pipeline, 10)
	require.Len(t, got, 4)
	assert.Equal(t, "module:disk_space_check", modulePaths(got)[3])
}

func TestUpdatePack(t *testing.T) {
	t.Run("missing pipeline is created last", func(t *testing.T) {
		doc, err := jsondoc.DecodeObject([]byte(`{"$schema": "x", "subject_id": "1"}`))
		require.NoError(t, err)
		changed, err := UpdatePack(doc, 10)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"$schema", "subject_id", "pre_acquisition_pipeline"}, doc.Keys())
	})

	t.Run("null pipeline keeps its position", func(t *testing.T) {
		doc, err := jsondoc.DecodeObject([]byte(`{"pre_acquisition_pipeline": null, "user_id": "u"}`))
		require.NoError(t, err)
		changed, err := UpdatePack(doc, 10)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"pre_acquisition_pipeline", "user_id"}, doc.Keys())
	})

	t.Run("non-array pipeline", func(t *testing.T) {
		doc, err := jsondoc.DecodeObject([]byte(`{"pre_acquisition_pipeline": {"a": 1}}`))
		require.NoError(t, err)
		_, err = UpdatePack(doc, 10)
		assert.ErrorIs(t, err, ErrPipelineNotArray)
	})

	t.Run("idempotent", func(t *testing.T) {
		doc, err := jsondoc.DecodeObject([]byte(`{"pre_acquisition_pipeline": ["session_creator"]}`))
		require.NoError(t, err)
		changed, err := UpdatePack(doc, 1000)
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = UpdatePack(doc, 1000)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("float literal is normalised", func(t *testing.T) {
		doc, err := jsondoc.DecodeObject([]byte(`{"pre_acquisition_pipeline": [{"module_path": "disk_space_check", "module_parameters": {"required_free_gb": 10.0}}]}`))
		require.NoError(t, err)
		changed, err := UpdatePack(doc, 10)
		require.NoError(t, err)
		assert.True(t, changed)
	})
}

func writePack(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUpdater_Run(t *testing.T) {
	root := t.TempDir()
	imaging := writePack(t, root, "imaging/slap2/pack.json", `{
  "$schema": "tooling/model_launcher.schema.json",
  "note": "café <ok>",
  "pre_acquisition_pipeline": [
    "session_creator",
    {"module_path": "wait_for_user_input"}
  ]
}`)
	behavior := writePack(t, root, "behavior_videos/pack.json", `{"user_id": "u"}`)
	broken := writePack(t, root, "behavior/broken.json", `{"user_id": `)
	list := writePack(t, root, "behavior/list.json", `[1, 2]`)
	other := writePack(t, root, "ephys/pack.json", `{"user_id":"u"}`)
	latin1 := writePack(t, root, "imaging/latin1.json", "{\"note\": \"caf\xe9\"}")

	u := &Updater{Policy: defaultPolicy()}
	stats, err := u.Run(root)
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 5, Updated: 2, Skipped: 3}, stats)
	assert.Equal(t, "Scanned 5 pack(s); updated 2; skipped 3.", stats.String())

	want := `{
  "$schema": "tooling/model_launcher.schema.json",
  "note": "café <ok>",
  "pre_acquisition_pipeline": [
    "session_creator",
    {
      "module_type": "launcher_module",
      "module_path": "disk_space_check",
      "module_parameters": {
        "required_free_gb": 1000
      }
    },
    {
      "module_path": "wait_for_user_input"
    }
  ]
}
`
	got, err := os.ReadFile(imaging)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))

	doc, err := jsondoc.ReadObjectFile(behavior)
	require.NoError(t, err)
	pipeline, ok := doc.GetArray(packs.PreAcquisition)
	require.True(t, ok)
	assert.Equal(t, `[{"module_type":"launcher_module","module_path":"disk_space_check","module_parameters":{"required_free_gb":10}}]`, compact(t, pipeline))

	for path, content := range map[string]string{
		broken: `{"user_id": `,
		list:   `[1, 2]`,
		other:  `{"user_id":"u"}`,
		latin1: "{\"note\": \"caf\xe9\"}",
	} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data), path)
	}

	stats, err = u.Run(root)
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 5, Updated: 0, Skipped: 3}, stats)
	again, err := os.ReadFile(imaging)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestUpdater_DryRun(t *testing.T) {
	root := t.TempDir()
	original := "{\n  \"pre_acquisition_pipeline\": []\n}\n"
	path := writePack(t, root, "imaging/pack.json", original)

	var out bytes.Buffer
	u := &Updater{Policy: defaultPolicy(), DryRun: true, Out: &out}
	stats, err := u.Run(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out.String(), "--- a/imaging/pack.json")
	assert.Contains(t, out.String(), "+        \"required_free_gb\": 1000")
}

func TestUpdater_MissingRoot(t *testing.T) {
	u := &Updater{Policy: defaultPolicy()}
	_, err := u.Run(filepath.Join(t.TempDir(), "packs"))
	assert.ErrorIs(t, err, packs.ErrRootNotFound)
}
