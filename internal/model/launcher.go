package model

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Pipeline entry discriminators.
const (
	ModuleTypeLauncher = "launcher_module"
	ModuleTypeScript   = "script_module"
	LegacyRepoModule   = "repo_module"
)

// LauncherParams is the top-level parameter file a pack holds.
type LauncherParams struct {
	Open

	Schema          *string `json:"$schema,omitempty" jsonschema_description:"JSON Schema identifier (relative path within repo)."`
	LauncherVersion *string `json:"launcher_version,omitempty" jsonschema_description:"Launcher version the pack was authored against."`
	Launcher        *string `json:"launcher,omitempty" jsonschema:"enum=base,enum=bonsai,enum=python,enum=matlab" jsonschema_description:"Which launcher implementation runs this pack."`

	SubjectID StringOrInt `json:"subject_id" jsonschema:"required" jsonschema_description:"Subject identifier used for naming and metadata lookup."`
	UserID    string      `json:"user_id" jsonschema:"required" jsonschema_description:"Operator/user identifier recorded alongside the session."`

	Operator       map[string]any `json:"operator,omitempty" jsonschema_description:"Optional operator identifier object."`
	ExperimentCode map[string]any `json:"experiment_code,omitempty" jsonschema_description:"Optional experiment code identifier object."`

	OutputRootFolder     *string `json:"output_root_folder,omitempty" jsonschema_description:"Root folder under which session folders are created."`
	OutputSessionFolder  *string `json:"output_session_folder,omitempty" jsonschema_description:"Explicit session folder; overrides the generated one."`
	SessionUUID          *string `json:"session_uuid,omitempty" jsonschema_description:"Session UUID; generated when absent."`
	RigID                *string `json:"rig_id,omitempty" jsonschema_description:"Rig identifier."`
	RigConfigPath        *string `json:"rig_config_path,omitempty" jsonschema_description:"Path to the rig configuration file."`
	RepositoryURL        *string `json:"repository_url,omitempty" jsonschema_description:"Repository to clone for the acquisition script."`
	RepositoryCommitHash *string `json:"repository_commit_hash,omitempty" jsonschema_description:"Commit to check out from repository_url."`
	LocalRepositoryPath  *string `json:"local_repository_path,omitempty" jsonschema_description:"Where the repository is cloned locally."`
	ScriptPath           *string `json:"script_path,omitempty" jsonschema_description:"Acquisition script, relative to the repository."`

	ScriptParameters map[string]any `json:"script_parameters,omitempty" jsonschema_description:"Parameters passed through to the acquisition script."`

	PreAcquisitionPipeline  []PipelineEntry `json:"pre_acquisition_pipeline,omitempty" jsonschema_description:"Modules run before acquisition starts."`
	PostAcquisitionPipeline []PipelineEntry `json:"post_acquisition_pipeline,omitempty" jsonschema_description:"Modules run after acquisition ends."`
}

// PipelineEntryObject is the structured pipeline entry form.
type PipelineEntryObject struct {
	Open

	ModuleType       *string        `json:"module_type,omitempty" jsonschema:"enum=launcher_module,enum=script_module" jsonschema_description:"How to execute this pipeline entry."`
	ModulePath       string         `json:"module_path" jsonschema:"required" jsonschema_description:"Identifier for module to run (launcher_module name or script path)."`
	ModuleParameters map[string]any `json:"module_parameters,omitempty" jsonschema_description:"Arguments passed to the module."`
	ModuleSchema     *string        `json:"module_schema,omitempty" jsonschema_description:"Schema used to validate module_parameters instead of the tooling schema for module_path."`
}

// LegacyRepoModuleEntry is the older repo-relative function entry form.
type LegacyRepoModuleEntry struct {
	Open

	Type             string         `json:"type,omitempty" jsonschema:"enum=repo_module,default=repo_module" jsonschema_description:"Legacy pipeline entry type."`
	RepoRelativePath string         `json:"repo_relative_path" jsonschema:"required" jsonschema_description:"Repo-relative path containing the callable."`
	Function         *string        `json:"function,omitempty" jsonschema_description:"Function name to invoke."`
	Kwargs           map[string]any `json:"kwargs,omitempty" jsonschema_description:"Keyword arguments passed to the function."`
}

// PipelineEntry keeps a pipeline entry as raw JSON. The three accepted forms
// are told apart by the pack tooling, which works on the document itself.
type PipelineEntry struct {
	Raw json.RawMessage
}

func (e *PipelineEntry) UnmarshalJSON(b []byte) error {
	e.Raw = append(e.Raw[:0], b...)
	return nil
}

func (e PipelineEntry) MarshalJSON() ([]byte, error) {
	if len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

func (PipelineEntry) JSONSchema() *jsonschema.Schema {
	shorthand := &jsonschema.Schema{
		Type:        "string",
		Description: "Shorthand module name, equivalent to a launcher_module entry without parameters.",
	}
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
		shorthand,
		inline(&PipelineEntryObject{}),
		inline(&LegacyRepoModuleEntry{}),
	}}
}
