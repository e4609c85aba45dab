package model

// MediaRole is the business purpose of an uploaded object, derived from its
// storage path. It is recomputed per event, never persisted.
type MediaRole string

const (
	RoleProperty    MediaRole = "property"
	RoleAvatar      MediaRole = "avatar"
	RoleCover       MediaRole = "cover"
	RoleAIGenerated MediaRole = "ai_generated"
	RoleNone        MediaRole = "none"
)

// FitMode is the resize strategy applied by the transcoder.
type FitMode string

const (
	// FitScaleDown shrinks only, never enlarges.
	FitScaleDown FitMode = "scale-down"
	// FitCover crops to fill the target box.
	FitCover FitMode = "cover"
)

// VariantRecipe describes one derivative to generate. Recipe sets are static
// configuration, fixed per role, never mutated at runtime.
type VariantRecipe struct {
	Name         string  `json:"name"`
	TargetWidth  int     `json:"width"`
	TargetHeight int     `json:"height"`
	Fit          FitMode `json:"fit"`
	Quality      int     `json:"quality"`
}

// VariantArtifact is one generated derivative ready to be persisted.
type VariantArtifact struct {
	DerivedKey  string
	Bytes       []byte
	ContentType string
	SizeBytes   int64
}

// ProcessingResult summarises one processing attempt. It is ephemeral, used
// for per-batch logging and the diagnostics endpoint only.
type ProcessingResult struct {
	ObjectKey        string   `json:"object_key"`
	Success          bool     `json:"success"`
	VariantKeys      []string `json:"variant_keys"`
	Error            string   `json:"error,omitempty"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}
