// Package storage provides the durable object store the pipeline lands its
// artifacts in, plus the partitioned key templates shared by every run.
package storage

import (
	"context"
	"fmt"
	"io"
)

// ObjectStore is the contract the loaders write through. Put must fully
// overwrite any existing object at key (last writer wins), which is what makes
// re-running a stage for the same run date idempotent.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader) error
}

// RawKey returns the raw-layer key for a run date.
func RawKey(runDate string) string {
	return fmt.Sprintf("raw/weather/%s/weather_data.json", runDate)
}

// ProcessedKey returns the processed-layer key for a run date.
func ProcessedKey(runDate string) string {
	return fmt.Sprintf("processed/weather/%s/weather_data.parquet", runDate)
}
