package model

import "time"

// MediaAsset is one normalized source video in the durable pool. For a
// given (ContentID, AspectRatio) pair at most one asset exists on disk;
// re-ingesting identical bytes is a no-op.
type MediaAsset struct {
	Path        string `json:"path"`
	ContentID   string `json:"content_id"`
	AspectRatio string `json:"aspect_ratio"`
}

// ClipSelection is a short sub-segment cut out of a pool asset. The clip
// file lives in the scratch area and is deleted after assembly; the
// source asset persists independently.
type ClipSelection struct {
	SourcePath  string  `json:"source_path"`
	StartOffset float64 `json:"start_offset_s"`
	Duration    float64 `json:"duration_s"`
	OutputPath  string  `json:"output_path"`
}

// AssemblyPlan is the shuffled clip order handed to concatenation,
// together with the realized total duration.
type AssemblyPlan struct {
	Clips         []ClipSelection `json:"clips"`
	TotalDuration float64         `json:"total_duration_s"`
}

// OutputArtifact is the final concatenated video, one per run.
type OutputArtifact struct {
	Path      string    `json:"path"`
	Duration  float64   `json:"duration_s"`
	ClipCount int       `json:"clip_count"`
	CreatedAt time.Time `json:"created_at"`
}
