package pipeline

import "context"

// RunContext carries the run date and the artifact hand-offs between stages.
// Each stage reads the slots filled by its predecessor and fills its own;
// there is no other channel between stages.
type RunContext struct {
	RunDate string

	// Filled by the Extractor.
	RawStagingPath string
	Fetched        int
	Failures       []FetchError

	// Filled by the RawLoader.
	RawKey string

	// Filled by the Transformer.
	ProcessedStagingPath string

	// Filled by the ProcessedLoader.
	ProcessedKey string
}

// Stage is one step of the pipeline. Run must be safe to re-invoke from
// scratch after a failure: compute stages recompute deterministically, load
// stages overwrite their target object.
type Stage interface {
	Name() string
	Run(ctx context.Context, rc *RunContext) error
}
