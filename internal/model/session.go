package model

// SessionArchiverParams configures copying the finished session to network
// storage.
type SessionArchiverParams struct {
	Open

	SessionDir      *string      `json:"session_dir,omitempty" jsonschema_description:"Source session directory to archive (defaults to launcher session folder if omitted)."`
	NetworkDir      *string      `json:"network_dir,omitempty" jsonschema_description:"Destination directory on a network share."`
	BackupDir       *string      `json:"backup_dir,omitempty" jsonschema_description:"Optional local backup directory used as an intermediate or fallback."`
	ManifestPath    *string      `json:"manifest_path,omitempty" jsonschema_description:"Optional path to a manifest file describing what was archived."`
	IncludePatterns StringOrList `json:"include_patterns,omitempty" jsonschema_description:"Glob(s) of files to include (string or list)."`
	ExcludePatterns StringOrList `json:"exclude_patterns,omitempty" jsonschema_description:"Glob(s) of files to exclude (string or list)."`
	ChecksumAlgo    *string      `json:"checksum_algo,omitempty" jsonschema_description:"Checksum algorithm for verification (e.g. 'md5', 'sha256')."`
	DryRun          bool         `json:"dry_run,omitempty" jsonschema:"default=false" jsonschema_description:"If true, do not write/copy; only log intended operations."`
	SkipCompleted   bool         `json:"skip_completed,omitempty" jsonschema:"default=true" jsonschema_description:"If true, skip items that appear already archived."`
	MaxRetries      int          `json:"max_retries,omitempty" jsonschema:"default=3,minimum=0" jsonschema_description:"Maximum retries for transient failures (copy/verify)."`
	RemoveEmptyDirs bool         `json:"remove_empty_dirs,omitempty" jsonschema:"default=false" jsonschema_description:"If true, remove empty source directories after archiving."`
}

// SessionEnhancerBonsaiParams has no declared fields; everything it receives
// is carried as extras.
type SessionEnhancerBonsaiParams struct {
	Open
}

// SessionEnhancerSLAP2Params configures SLAP2 session metadata enrichment.
type SessionEnhancerSLAP2Params struct {
	Open

	SessionType       *string  `json:"session_type,omitempty" jsonschema:"enum=Parent,enum=Branch" jsonschema_description:"Whether this session is a parent (primary) or a branch (child/follow-up) session."`
	TargetedStructure *string  `json:"targeted_structure,omitempty" jsonschema_description:"Brain structure targeted by the experiment (free-text)."`
	FOVCoordinateML   *float64 `json:"fov_coordinate_ml,omitempty" jsonschema_description:"Field-of-view mediolateral coordinate."`
	FOVCoordinateAP   *float64 `json:"fov_coordinate_ap,omitempty" jsonschema_description:"Field-of-view anteroposterior coordinate."`
	FOVCoordinateUnit *string  `json:"fov_coordinate_unit,omitempty" jsonschema:"example=mm" jsonschema_description:"Units for FOV coordinates (e.g. 'mm' or 'um')."`
	FOVReference      *string  `json:"fov_reference,omitempty" jsonschema:"example=bregma" jsonschema_description:"Reference origin used for coordinates (free-text)."`
	Magnification     *string  `json:"magnification,omitempty" jsonschema:"example=16x" jsonschema_description:"Objective or system magnification descriptor."`
	FOVScaleFactor    *float64 `json:"fov_scale_factor,omitempty" jsonschema_description:"Scale factor applied to convert coordinates/pixels to physical units (module-specific)."`
}

// SLAP2MetaAnnotatorParams configures routing and annotating SLAP2 meta files.
type SLAP2MetaAnnotatorParams struct {
	Open

	SourceDir                 *string `json:"source_dir,omitempty" jsonschema_description:"Session folder to scan and annotate (defaults to output_session_folder)."`
	AssumeYes                 bool    `json:"assume_yes,omitempty" jsonschema:"default=false" jsonschema_description:"If true, skip interactive confirmations and use defaults."`
	DefaultBrainArea          string  `json:"default_brain_area,omitempty" jsonschema:"default=VISp" jsonschema_description:"Default brain area suggested to operator per meta file."`
	DefaultGreenChannelTarget *string `json:"default_green_channel_target,omitempty" jsonschema_description:"Default Intended Green Channel Target (asked once per experiment if not provided)."`
	DefaultRedChannelTarget   *string `json:"default_red_channel_target,omitempty" jsonschema_description:"Default Intended Red Channel Target (asked once per experiment if not provided)."`
	DefaultSLAP2Mode          *string `json:"default_slap2_mode,omitempty" jsonschema_description:"Default SLAP2 mode (asked once per acquisition / meta pair if not provided)."`
	DefaultDMD1Depth          string  `json:"default_dmd1_depth,omitempty" jsonschema:"default=" jsonschema_description:"Depth (microns from surface) for DMD1 acquisitions; used for all DMD1 files."`
	DefaultDMD2Depth          string  `json:"default_dmd2_depth,omitempty" jsonschema:"default=" jsonschema_description:"Depth (microns from surface) for DMD2 acquisitions; used for all DMD2 files."`
	DynamicDir                string  `json:"dynamic_dir,omitempty" jsonschema:"default=dynamic_data" jsonschema_description:"Relative destination for dynamic acquisition files (under session folder)."`
	StructureDir              string  `json:"structure_dir,omitempty" jsonschema:"default=structure_stack" jsonschema_description:"Relative destination for structure stack files (under session folder)."`
	RefStackDir               string  `json:"ref_stack_dir,omitempty" jsonschema:"default=dynamic_data/reference_stack" jsonschema_description:"Relative destination for reference stack files (under session folder)."`
	ManifestName              string  `json:"manifest_name,omitempty" jsonschema:"default=routing_manifest.json" jsonschema_description:"Filename for the routing/annotation manifest (written under launcher_metadata)."`
	ManifestPath              *string `json:"manifest_path,omitempty" jsonschema_description:"Optional manifest path (absolute or relative to session folder) to override the default under launcher_metadata."`
}

// StimulusTablePredictiveProcessingParams has no declared fields.
type StimulusTablePredictiveProcessingParams struct {
	Open
}
