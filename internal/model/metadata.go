package model

// MetadataSubjectFetchParams configures the subject metadata lookup.
type MetadataSubjectFetchParams struct {
	Open

	SubjectID *StringOrInt `json:"metadata_subject_id,omitempty" jsonschema_description:"Subject identifier to query (defaults to top-level subject_id if omitted)."`
	MouseID   *StringOrInt `json:"metadata_mouse_id,omitempty" jsonschema_description:"Optional mouse identifier if distinct from subject_id."`
}

// MetadataProceduresFetchParams configures the procedures metadata lookup.
type MetadataProceduresFetchParams struct {
	Open

	SubjectID *StringOrInt `json:"metadata_subject_id,omitempty" jsonschema_description:"Subject identifier to query (defaults to top-level subject_id if omitted)."`
	MouseID   *StringOrInt `json:"metadata_mouse_id,omitempty" jsonschema_description:"Optional mouse identifier if distinct from subject_id."`
	Timeout   float64      `json:"metadata_procedures_timeout,omitempty" jsonschema:"default=60,minimum=0" jsonschema_description:"Timeout in seconds for procedures fetch calls."`
}

// MetadataProjectValidatorParams configures the project name check.
type MetadataProjectValidatorParams struct {
	Open

	ExpectedName *string  `json:"metadata_project_name,omitempty" jsonschema_description:"Expected project name."`
	Prompt       *string  `json:"metadata_project_prompt,omitempty" jsonschema_description:"Prompt shown if project validation needs operator confirmation."`
	ProjectName  *string  `json:"project_name,omitempty" jsonschema_description:"Observed project name (advanced/legacy)."`
	Projects     []string `json:"projects,omitempty" jsonschema_description:"List of observed/allowed projects (advanced/legacy)."`
}

// MetadataProtocolValidatorParams configures the protocol check.
type MetadataProtocolValidatorParams struct {
	Open

	ExpectedName *string    `json:"metadata_protocol_name,omitempty" jsonschema_description:"Expected protocol name."`
	Prompt       *string    `json:"metadata_protocol_prompt,omitempty" jsonschema_description:"Prompt shown if protocol validation needs operator confirmation."`
	ProtocolName *string    `json:"protocol_name,omitempty" jsonschema_description:"Observed protocol name (advanced/legacy)."`
	ProtocolID   ProtocolID `json:"protocol_id,omitempty" jsonschema_description:"Expected protocol identifier(s) (string/int or list)."`
}
