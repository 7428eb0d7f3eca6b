package pipeline

import (
	"fmt"

	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

// FetchError records a single location whose extraction failed. It never
// crosses the stage boundary: the Extractor collects these, logs them, and the
// run continues with whatever succeeded.
type FetchError struct {
	Location weather.Location
	Err      error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Location.Query(), e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

// StagingError is a fatal local-filesystem failure in a compute stage. It
// escalates to the stage runner for retry.
type StagingError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("%s: staging file %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

// StorageError is a fatal durable-storage failure in a load stage. Same retry
// posture as StagingError.
type StorageError struct {
	Stage string
	Key   string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: object %s: %v", e.Stage, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
