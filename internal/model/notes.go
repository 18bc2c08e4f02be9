package model

// ExperimentNotesEditorParams configures the notes file opened at the start
// of a session.
type ExperimentNotesEditorParams struct {
	Open

	Filename      *string      `json:"experiment_notes_filename,omitempty" jsonschema:"example=notes/experiment_notes.txt" jsonschema_description:"Relative path (inside the session folder) for the notes file."`
	Encoding      string       `json:"experiment_notes_encoding,omitempty" jsonschema:"default=utf-8" jsonschema_description:"Text encoding used when reading/writing the notes file."`
	LaunchEditor  bool         `json:"experiment_notes_launch_editor,omitempty" jsonschema:"default=true" jsonschema_description:"If true, launches an editor command to open the notes file."`
	EditorCommand StringOrList `json:"experiment_notes_editor_command,omitempty" jsonschema_description:"Editor command (string) or argv list."`
	EditorArgs    StringOrList `json:"experiment_notes_editor_args,omitempty" jsonschema_description:"Additional args (string) or argv list."`
}

// ExperimentNotesFinalizeParams configures the end-of-session notes check.
type ExperimentNotesFinalizeParams struct {
	Open

	Filename        *string `json:"experiment_notes_filename,omitempty" jsonschema:"example={session_folder}/notes/experiment_notes.txt" jsonschema_description:"Path to the notes file (absolute or placeholder-expanded)."`
	Encoding        string  `json:"experiment_notes_encoding,omitempty" jsonschema:"default=utf-8" jsonschema_description:"Text encoding used when reading the notes file."`
	Preview         bool    `json:"experiment_notes_preview,omitempty" jsonschema:"default=true" jsonschema_description:"If true, print a preview of notes content to the console."`
	PreviewLimit    int     `json:"experiment_notes_preview_limit,omitempty" jsonschema:"default=2000,minimum=0" jsonschema_description:"Limit for preview output (module-specific)."`
	ConfirmPrompt   *string `json:"experiment_notes_confirm_prompt,omitempty" jsonschema:"example=Confirm experiment notes are saved; type 'yes' to finish." jsonschema_description:"Prompt shown to the operator to confirm notes are complete."`
	AutocloseEditor bool    `json:"experiment_notes_autoclose_editor,omitempty" jsonschema:"default=true" jsonschema_description:"If true, attempts to close the launched editor using the PID stored in the notes header."`
}
