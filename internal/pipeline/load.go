package pipeline

import (
	"context"
	"log"
	"os"

	"github.com/tiagomars/weather-data-pipeline/internal/storage"
)

// RawLoader copies the raw staging file verbatim into the raw layer of the
// object store. The key is derived from the run date alone, so a re-run
// overwrites the previous object.
type RawLoader struct {
	store storage.ObjectStore
}

// NewRawLoader creates the raw load stage.
func NewRawLoader(store storage.ObjectStore) *RawLoader {
	return &RawLoader{store: store}
}

func (l *RawLoader) Name() string { return "load-raw" }

func (l *RawLoader) Run(ctx context.Context, rc *RunContext) error {
	key := storage.RawKey(rc.RunDate)

	f, err := os.Open(rc.RawStagingPath)
	if err != nil {
		return &StagingError{Stage: l.Name(), Path: rc.RawStagingPath, Err: err}
	}
	defer f.Close()

	if err := l.store.Put(ctx, key, f); err != nil {
		return &StorageError{Stage: l.Name(), Key: key, Err: err}
	}

	log.Printf("INFO: load-raw: uploaded %s", key)
	rc.RawKey = key
	return nil
}

// ProcessedLoader is symmetric to RawLoader for the processed layer.
type ProcessedLoader struct {
	store storage.ObjectStore
}

// NewProcessedLoader creates the processed load stage.
func NewProcessedLoader(store storage.ObjectStore) *ProcessedLoader {
	return &ProcessedLoader{store: store}
}

func (l *ProcessedLoader) Name() string { return "load-processed" }

func (l *ProcessedLoader) Run(ctx context.Context, rc *RunContext) error {
	key := storage.ProcessedKey(rc.RunDate)

	f, err := os.Open(rc.ProcessedStagingPath)
	if err != nil {
		return &StagingError{Stage: l.Name(), Path: rc.ProcessedStagingPath, Err: err}
	}
	defer f.Close()

	if err := l.store.Put(ctx, key, f); err != nil {
		return &StorageError{Stage: l.Name(), Key: key, Err: err}
	}

	log.Printf("INFO: load-processed: uploaded %s", key)
	rc.ProcessedKey = key
	return nil
}
