package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

// PipelineVersion tags every processed record with the transform revision that
// produced it.
const PipelineVersion = "1.0"

// Transformer reads the staged raw batch, derives the categorical fields, and
// stages the processed records as a parquet file named after the run date. An
// empty raw batch is valid and produces an empty (schema-only) parquet file.
type Transformer struct {
	stagingDir string
	version    string
	now        func() time.Time
}

// NewTransformer creates the transform stage.
func NewTransformer(stagingDir string) *Transformer {
	return &Transformer{
		stagingDir: stagingDir,
		version:    PipelineVersion,
		now:        time.Now,
	}
}

func (t *Transformer) Name() string { return "transform" }

func (t *Transformer) Run(ctx context.Context, rc *RunContext) error {
	batch, err := ReadRawStaging(rc.RawStagingPath)
	if err != nil {
		return &StagingError{Stage: t.Name(), Path: rc.RawStagingPath, Err: err}
	}

	processedAt := t.now().UTC().Format(time.RFC3339)
	records := make([]weather.ProcessedRecord, 0, len(batch))
	for _, obs := range batch {
		records = append(records, weather.Process(obs, processedAt, t.version))
	}

	path := filepath.Join(t.stagingDir, fmt.Sprintf("weather_processed_%s.parquet", rc.RunDate))
	if err := writeProcessedStaging(path, records); err != nil {
		return &StagingError{Stage: t.Name(), Path: path, Err: err}
	}

	log.Printf("INFO: transform: wrote %d processed records for %s", len(records), rc.RunDate)

	rc.ProcessedStagingPath = path
	return nil
}

func writeProcessedStaging(path string, records []weather.ProcessedRecord) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(fw, new(weather.ProcessedRecord), 2)
	if err != nil {
		fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, rec := range records {
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}
