package model

// DiskSpaceCheckParams configures the free-space guard that runs before
// acquisition.
type DiskSpaceCheckParams struct {
	Open

	RequiredFreeGB     float64 `json:"required_free_gb" jsonschema:"required,exclusiveMinimum=0,example=250" jsonschema_description:"Minimum required free space (GiB)."`
	DiskSpaceCheckPath *string `json:"disk_space_check_path,omitempty" jsonschema:"example={output_session_folder}" jsonschema_description:"Path to check. If omitted, the launcher uses output_session_folder."`
	AllowOverride      bool    `json:"allow_override,omitempty" jsonschema:"default=false" jsonschema_description:"If true, allow operator prompt to continue even if below threshold."`
}

// WaitForUserInputParams configures the operator confirmation pause.
type WaitForUserInputParams struct {
	Open

	Prompt        *string `json:"prompt,omitempty" jsonschema:"example=Rig ready? Press Enter to start Bonsai" jsonschema_description:"Prompt shown to the operator. If omitted, the launcher uses a built-in default."`
	FailIfNoInput bool    `json:"fail_if_no_input,omitempty" jsonschema:"default=false" jsonschema_description:"If true, treat missing stdin (non-interactive) as an error."`
}

// SessionCreatorParams configures session folder creation.
type SessionCreatorParams struct {
	Open

	Force bool `json:"force,omitempty" jsonschema:"default=false" jsonschema_description:"If true, overwrite/recreate an existing session folder if present."`
}

// InstrumentJSONFetchParams configures copying instrument.json into the
// session folder.
type InstrumentJSONFetchParams struct {
	Open

	SourceRoot      string  `json:"instrument_json_source_root,omitempty" jsonschema:"default=C:/Users/ScanImage/Documents/GitHub/slap2_processing" jsonschema_description:"Directory to search for instrument.json (the most recently modified match is selected)."`
	SourcePath      *string `json:"instrument_json_source_path,omitempty" jsonschema_description:"Optional explicit path to an instrument.json file (skips auto-search)."`
	Filename        string  `json:"instrument_json_filename,omitempty" jsonschema:"default=instrument.json" jsonschema_description:"Filename to search for under instrument_json_source_root."`
	Recursive       bool    `json:"instrument_json_recursive,omitempty" jsonschema:"default=true" jsonschema_description:"If true, search instrument_json_source_root recursively."`
	DestinationName string  `json:"instrument_json_destination_name,omitempty" jsonschema:"default=instrument.json" jsonschema_description:"Destination filename to write into the session root."`
	Required        bool    `json:"instrument_json_required,omitempty" jsonschema:"default=true" jsonschema_description:"If true, fail pre-acquisition when an instrument.json cannot be selected/copied."`
}
