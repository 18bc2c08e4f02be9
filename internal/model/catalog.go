package model

// Default is the catalog of every launcher module known to this repository.
var Default = newDefault()

func newDefault() *Registry {
	r := NewRegistry()

	r.MustRegister(Model{
		Name: LauncherName,
		Description: "Top-level schema for OpenScope launcher parameter files. " +
			"This schema is intentionally permissive (additionalProperties=true) while providing " +
			"structured validation and documentation for common keys and pipeline entry formats.",
		New: func() any { return &LauncherParams{} },
	})

	r.MustRegister(Model{
		Name:        "disk_space_check",
		Description: "Check that the session volume has enough free space before starting acquisition.",
		New:         func() any { return &DiskSpaceCheckParams{} },
	})
	r.MustRegister(Model{
		Name:        "wait_for_user_input",
		Description: "Pause until an operator confirms readiness (press Enter).",
		New:         func() any { return &WaitForUserInputParams{} },
	})
	r.MustRegister(Model{
		Name: "experiment_notes_editor",
		Doc: "Open an experiment notes file in the session folder\n" +
			"and launch an editor on it.\n\n" +
			"The editor PID is recorded in the notes header so the finalize step can close it.",
		New: func() any { return &ExperimentNotesEditorParams{} },
	})
	r.MustRegister(Model{
		Name: "experiment_notes_finalize",
		Doc: "Confirm the experiment notes are complete before the session closes.\n\n" +
			"Optionally previews the notes and closes the editor opened at session start.",
		New: func() any { return &ExperimentNotesFinalizeParams{} },
	})
	r.MustRegister(Model{
		Name: "instrument_json_fetch",
		Doc:  "Copy the most recent instrument.json into the session root.",
		New:  func() any { return &InstrumentJSONFetchParams{} },
	})
	r.MustRegister(Model{
		Name: "metadata_procedures_fetch",
		Doc:  "Fetch surgical procedures for the subject from the metadata service.",
		New:  func() any { return &MetadataProceduresFetchParams{} },
	})
	r.MustRegister(Model{
		Name: "metadata_project_validator",
		Doc:  "Check the session's project name against the expected project.",
		New:  func() any { return &MetadataProjectValidatorParams{} },
	})
	r.MustRegister(Model{
		Name: "metadata_protocol_validator",
		Doc:  "Check the session's protocol against the expected protocol name or identifiers.",
		New:  func() any { return &MetadataProtocolValidatorParams{} },
	})
	r.MustRegister(Model{
		Name: "metadata_subject_fetch",
		Doc:  "Fetch subject metadata from the metadata service.",
		New:  func() any { return &MetadataSubjectFetchParams{} },
	})
	r.MustRegister(Model{
		Name: "session_archiver",
		Doc: "Archive the finished session to network storage,\n" +
			"verifying checksums and retrying transient failures.\n\n" +
			"A manifest records what was copied so reruns can skip completed items.",
		New: func() any { return &SessionArchiverParams{} },
	})
	r.MustRegister(Model{
		Name: "session_creator",
		Doc:  "Create the session folder and its launcher metadata.",
		New:  func() any { return &SessionCreatorParams{} },
	})
	r.MustRegister(Model{
		Name: "session_enhancer_bonsai",
		New:  func() any { return &SessionEnhancerBonsaiParams{} },
	})
	r.MustRegister(Model{
		Name: "session_enhancer_slap2",
		Doc:  "Add SLAP2 field-of-view and session-type details to session metadata.",
		New:  func() any { return &SessionEnhancerSLAP2Params{} },
	})
	r.MustRegister(Model{
		Name: "slap2_meta_annotator",
		Doc: "Route SLAP2 acquisition files into the session layout\n" +
			"and annotate their meta files.",
		New: func() any { return &SLAP2MetaAnnotatorParams{} },
	})
	r.MustRegister(Model{
		Name: "stimulus_table_predictive_processing",
		New:  func() any { return &StimulusTablePredictiveProcessingParams{} },
	})

	return r
}
